package domain

// MatchEvent is the sealed event type emitted by the matching core, in
// place of the order-listener/trade-listener abstract base classes the
// original implementation used. The booker shard type-switches over the
// concrete cases; no other implementations are expected.
type MatchEvent interface {
	isMatchEvent()
}

// FillEvent fires once per matched pair. Price is the resting order's
// price (the price-maker wins); Quantity is min(open qty of both sides).
type FillEvent struct {
	Incoming *Order
	Resting  *Order
	Quantity int64
	Price    int64
}

func (FillEvent) isMatchEvent() {}

// TradeEvent aggregates every FillEvent against the same price level into
// a single event, fired after all fills at that level have been applied.
// AskLevels/BidLevels are the book's depth snapshot taken at that instant
// -- before any subsequent level in the same sweep is touched -- so a
// multi-level sweep reports each level's own point-in-time depth rather
// than the final, fully-drained state.
type TradeEvent struct {
	Symbol    string
	Quantity  int64
	Price     int64
	AskLevels [5]PriceQty
	BidLevels [5]PriceQty
}

func (TradeEvent) isMatchEvent() {}

// RejectEvent reports an order the matching core declined to apply.
type RejectEvent struct {
	Order  *Order
	Reason string
}

func (RejectEvent) isMatchEvent() {}

// CancelRejectEvent reports a cancel that targeted an order the book
// doesn't know about.
type CancelRejectEvent struct {
	UniqueID int64
	Symbol   string
	Reason   string
}

func (CancelRejectEvent) isMatchEvent() {}
