package orderbook

// PriceTreeKind selects which PriceTreeInterface implementation a Book's
// sides are built from.
type PriceTreeKind int

const (
	// HashMapList is the default: cheapest for the common case of a
	// handful of active price levels near the touch.
	HashMapList PriceTreeKind = iota
	// RedBlackTree trades a log(n) touch for bounded-cost inserts far
	// from the touch, better suited to illiquid symbols or the call
	// auction's wide price range.
	RedBlackTree
)

func newSide(kind PriceTreeKind, descending bool) PriceTreeInterface {
	switch kind {
	case RedBlackTree:
		return NewRedBlackTreePriceTree(descending)
	default:
		return NewHashMapListPriceTree(descending)
	}
}
