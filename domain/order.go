package domain

import "sync"

// Order is a resting or in-flight order as tracked by a Book. It is also
// the in-memory form of an OrderTick once the decoder has handed it off to
// a booker shard.
//
// Memory layout: hot fields touched on every match (Price1000x, OpenQty,
// Side) are grouped first so the common case stays in one cache line; the
// bookkeeping fields used only for dedup/logging trail behind.
type Order struct {
	UniqueID     int64
	Price1000x   int64
	OpenQty      int64 // mutable: decremented on each fill, never negative
	Quantity     int64 // quantity as originally submitted
	Side         Side
	OrderType    OrderType
	ExchangeTime int64
	Symbol       string

	// ListElement holds the *list.Element the order occupies in its price
	// level's FIFO queue, stored as interface{} to avoid an import cycle
	// with the orderbook package. nil when the order isn't resting.
	ListElement interface{}

	Cancelled bool
}

var orderPool = sync.Pool{
	New: func() any { return &Order{} },
}

// NewOrder builds an Order from decoded tick fields, pulling the backing
// struct from a pool to keep the hot path allocation-free.
func NewOrder(uniqueID int64, symbol string, side Side, orderType OrderType, price1000x, quantity, exchangeTime int64) *Order {
	o := orderPool.Get().(*Order)
	o.UniqueID = uniqueID
	o.Symbol = symbol
	o.Side = side
	o.OrderType = orderType
	o.Price1000x = price1000x
	o.Quantity = quantity
	o.OpenQty = quantity
	o.ExchangeTime = exchangeTime
	o.ListElement = nil
	o.Cancelled = false
	return o
}

// IsFilled reports whether the order has no remaining open quantity.
func (o *Order) IsFilled() bool {
	return o.OpenQty <= 0
}

// Fill reduces the order's open quantity by qty. Callers must not pass a
// qty greater than OpenQty.
func (o *Order) Fill(qty int64) {
	o.OpenQty -= qty
}

// Release returns the order to the pool. Only safe once the order is no
// longer resting in any book or referenced by any pending event.
func (o *Order) Release() {
	*o = Order{}
	orderPool.Put(o)
}

// Clone makes an independent copy, used when an order needs to be
// rewritten (e.g. an SZSE residual market order converted to a limit)
// without mutating the original.
func (o *Order) Clone() *Order {
	c := orderPool.Get().(*Order)
	*c = *o
	c.ListElement = nil
	return c
}
