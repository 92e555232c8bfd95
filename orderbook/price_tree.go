package orderbook

import (
	"container/list"

	"lightning-exchange/domain"
)

// HashMapListPriceTree is a HashMap + doubly-linked-list price tree: O(1)
// best-price access via a direct pointer, O(1) level lookup via the map,
// and an O(depth) walk only when inserting a brand new price level (rare
// once the book has warmed up, since incoming orders cluster near the
// touch). This is the structure the matching core uses by default; see
// RedBlackTreePriceTree for the alternative tuned for symbols that
// accumulate many simultaneous price levels.
type HashMapListPriceTree struct {
	levels     map[int64]*priceNode
	head       *priceNode // best price
	descending bool       // true for bids (higher is better), false for asks
	size       int
}

var _ PriceTreeInterface = (*HashMapListPriceTree)(nil)

// priceNode is a Level plus the doubly linked list pointers that keep
// levels ordered by price without requiring a full re-sort on insert.
type priceNode struct {
	Level
	next, prev *priceNode
}

// NewHashMapListPriceTree creates an empty side. descending=true orders
// price levels from highest to lowest (bids); descending=false orders
// lowest to highest (asks).
func NewHashMapListPriceTree(descending bool) *HashMapListPriceTree {
	return &HashMapListPriceTree{
		levels:     make(map[int64]*priceNode),
		descending: descending,
	}
}

// isBetter reports whether price a ranks ahead of price b on this side.
func (t *HashMapListPriceTree) isBetter(a, b int64) bool {
	if t.descending {
		return a > b
	}
	return a < b
}

func (t *HashMapListPriceTree) Insert(order *domain.Order) {
	node, ok := t.levels[order.Price1000x]
	if !ok {
		node = &priceNode{Level: Level{Price1000x: order.Price1000x, Orders: list.New()}}
		t.levels[order.Price1000x] = node
		t.linkNode(node)
	}
	order.ListElement = node.Orders.PushBack(order)
	node.Volume += order.OpenQty
}

// linkNode splices a freshly created node into the list in price-priority
// order, walking from the head. Lookups of a never-seen price are rare
// once the book has warmed up near the touch, so a linear walk is fine.
func (t *HashMapListPriceTree) linkNode(node *priceNode) {
	t.size++
	if t.head == nil {
		t.head = node
		return
	}
	if t.isBetter(node.Price1000x, t.head.Price1000x) {
		node.next = t.head
		t.head.prev = node
		t.head = node
		return
	}
	cur := t.head
	for cur.next != nil && t.isBetter(cur.next.Price1000x, node.Price1000x) {
		cur = cur.next
	}
	node.next = cur.next
	node.prev = cur
	if cur.next != nil {
		cur.next.prev = node
	}
	cur.next = node
}

func (t *HashMapListPriceTree) unlinkNode(node *priceNode) {
	t.size--
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		t.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	delete(t.levels, node.Price1000x)
}

func (t *HashMapListPriceTree) Fill(order *domain.Order, qty int64) {
	node, ok := t.levels[order.Price1000x]
	if !ok {
		return
	}
	order.Fill(qty)
	node.Volume -= qty
	if order.IsFilled() {
		t.removeFromLevel(node, order)
	}
}

func (t *HashMapListPriceTree) Remove(order *domain.Order) {
	node, ok := t.levels[order.Price1000x]
	if !ok {
		return
	}
	node.Volume -= order.OpenQty
	t.removeFromLevel(node, order)
}

// removeFromLevel detaches order from node's FIFO queue and, if that
// empties the level, unlinks the level itself.
func (t *HashMapListPriceTree) removeFromLevel(node *priceNode, order *domain.Order) {
	if elem, ok := order.ListElement.(*list.Element); ok && elem != nil {
		node.Orders.Remove(elem)
		order.ListElement = nil
	}
	if node.Orders.Len() == 0 {
		t.unlinkNode(node)
	}
}

func (t *HashMapListPriceTree) GetBestPrice() int64 {
	if t.head == nil {
		return 0
	}
	return t.head.Price1000x
}

func (t *HashMapListPriceTree) GetBestLevel() *Level {
	if t.head == nil {
		return nil
	}
	return &t.head.Level
}

func (t *HashMapListPriceTree) GetLevel(price1000x int64) *Level {
	node, ok := t.levels[price1000x]
	if !ok {
		return nil
	}
	return &node.Level
}

func (t *HashMapListPriceTree) GetDepth(maxLevels int) []Level {
	out := make([]Level, 0, maxLevels)
	for cur := t.head; cur != nil && len(out) < maxLevels; cur = cur.next {
		out = append(out, cur.Level)
	}
	return out
}

func (t *HashMapListPriceTree) IsEmpty() bool { return t.size == 0 }
func (t *HashMapListPriceTree) Size() int     { return t.size }
