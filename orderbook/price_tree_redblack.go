package orderbook

import (
	"container/list"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"

	"lightning-exchange/domain"
)

// RedBlackTreePriceTree is an ordered-map price tree backed by a red-black
// tree: O(log n) insert/remove of a new price level, O(log n) best-price
// via Left()/Right(), in exchange for avoiding the O(depth) walk
// HashMapListPriceTree pays when a level at a never-seen price appears far
// from the touch. It is the better choice for symbols whose book
// accumulates many simultaneous levels (illiquid names, wide auctions).
type RedBlackTreePriceTree struct {
	tree       *rbt.Tree[int64, *Level]
	descending bool
}

var _ PriceTreeInterface = (*RedBlackTreePriceTree)(nil)

// NewRedBlackTreePriceTree creates an empty side. descending=true orders
// price levels from highest to lowest (bids); descending=false orders
// lowest to highest (asks).
func NewRedBlackTreePriceTree(descending bool) *RedBlackTreePriceTree {
	cmp := func(a, b int64) int {
		switch {
		case a == b:
			return 0
		case descending:
			if a > b {
				return -1
			}
			return 1
		default:
			if a < b {
				return -1
			}
			return 1
		}
	}
	return &RedBlackTreePriceTree{
		tree:       rbt.NewWith[int64, *Level](cmp),
		descending: descending,
	}
}

func (t *RedBlackTreePriceTree) Insert(order *domain.Order) {
	level, ok := t.tree.Get(order.Price1000x)
	if !ok {
		level = &Level{Price1000x: order.Price1000x, Orders: list.New()}
		t.tree.Put(order.Price1000x, level)
	}
	order.ListElement = level.Orders.PushBack(order)
	level.Volume += order.OpenQty
}

func (t *RedBlackTreePriceTree) Fill(order *domain.Order, qty int64) {
	level, ok := t.tree.Get(order.Price1000x)
	if !ok {
		return
	}
	order.Fill(qty)
	level.Volume -= qty
	if order.IsFilled() {
		t.removeFromLevel(level, order)
	}
}

func (t *RedBlackTreePriceTree) Remove(order *domain.Order) {
	level, ok := t.tree.Get(order.Price1000x)
	if !ok {
		return
	}
	level.Volume -= order.OpenQty
	t.removeFromLevel(level, order)
}

func (t *RedBlackTreePriceTree) removeFromLevel(level *Level, order *domain.Order) {
	if elem, ok := order.ListElement.(*list.Element); ok && elem != nil {
		level.Orders.Remove(elem)
		order.ListElement = nil
	}
	if level.Orders.Len() == 0 {
		t.tree.Remove(level.Price1000x)
	}
}

func (t *RedBlackTreePriceTree) GetBestLevel() *Level {
	node := t.tree.Left()
	if node == nil {
		return nil
	}
	return node.Value
}

func (t *RedBlackTreePriceTree) GetBestPrice() int64 {
	level := t.GetBestLevel()
	if level == nil {
		return 0
	}
	return level.Price1000x
}

func (t *RedBlackTreePriceTree) GetLevel(price1000x int64) *Level {
	level, ok := t.tree.Get(price1000x)
	if !ok {
		return nil
	}
	return level
}

func (t *RedBlackTreePriceTree) GetDepth(maxLevels int) []Level {
	out := make([]Level, 0, maxLevels)
	it := t.tree.Iterator()
	for it.Next() && len(out) < maxLevels {
		out = append(out, *it.Value())
	}
	return out
}

func (t *RedBlackTreePriceTree) IsEmpty() bool { return t.tree.Size() == 0 }
func (t *RedBlackTreePriceTree) Size() int     { return t.tree.Size() }
