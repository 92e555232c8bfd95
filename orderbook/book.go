package orderbook

import "lightning-exchange/domain"

// Book is one symbol's limit order book: a bid side and an ask side, each
// a PriceTreeInterface, plus a flat index of every resting order by
// UniqueID so a cancel or a fill-by-id doesn't need to know which side or
// price the order lives at.
type Book struct {
	Symbol string
	Bids   PriceTreeInterface
	Asks   PriceTreeInterface

	orders map[int64]*domain.Order
}

// NewBook creates an empty book for symbol using kind for both sides.
func NewBook(symbol string, kind PriceTreeKind) *Book {
	return &Book{
		Symbol: symbol,
		Bids:   newSide(kind, true),
		Asks:   newSide(kind, false),
		orders: make(map[int64]*domain.Order),
	}
}

func (b *Book) side(s domain.Side) PriceTreeInterface {
	if s == domain.SideBuy {
		return b.Bids
	}
	return b.Asks
}

// Insert rests order on its side and indexes it by UniqueID.
func (b *Book) Insert(order *domain.Order) {
	b.side(order.Side).Insert(order)
	b.orders[order.UniqueID] = order
}

// Fill applies a fill of qty to the resting order identified by
// uniqueID, removing it from the book once fully filled. Returns the
// order, or nil if uniqueID isn't resting.
func (b *Book) Fill(uniqueID int64, qty int64) *domain.Order {
	order, ok := b.orders[uniqueID]
	if !ok {
		return nil
	}
	b.side(order.Side).Fill(order, qty)
	if order.IsFilled() {
		delete(b.orders, uniqueID)
	}
	return order
}

// Cancel fully removes the resting order identified by uniqueID. Returns
// the order, or nil if uniqueID isn't resting (a cancel-reject).
func (b *Book) Cancel(uniqueID int64) *domain.Order {
	order, ok := b.orders[uniqueID]
	if !ok {
		return nil
	}
	b.side(order.Side).Remove(order)
	delete(b.orders, uniqueID)
	return order
}

// Lookup returns the resting order by UniqueID without removing it.
func (b *Book) Lookup(uniqueID int64) (*domain.Order, bool) {
	order, ok := b.orders[uniqueID]
	return order, ok
}

// BestBid/BestAsk return the touch price on either side, or 0 if empty.
func (b *Book) BestBid() int64 { return b.Bids.GetBestPrice() }
func (b *Book) BestAsk() int64 { return b.Asks.GetBestPrice() }

// Crossed reports whether the book is currently crossed (best bid >=
// best ask). matching.Core never rests a crossing limit order, so this
// only happens when orders are Inserted directly.
func (b *Book) Crossed() bool {
	bid, ask := b.BestBid(), b.BestAsk()
	return bid > 0 && ask > 0 && bid >= ask
}

// Depth5 fills dst (length 5) with up to 5 levels from side, zero-padding
// any remaining entries. Used when building a GeneratedL2Tick.
func Depth5(side PriceTreeInterface, dst *[5]domain.PriceQty) {
	levels := side.GetDepth(5)
	for i := range dst {
		if i < len(levels) {
			dst[i] = domain.PriceQty{Price1000x: levels[i].Price1000x, Quantity: levels[i].Volume}
		} else {
			dst[i] = domain.PriceQty{}
		}
	}
}
