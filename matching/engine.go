// Package matching implements the price-time-priority matching core: given
// a resting book and an incoming order, it walks the opposite side and
// produces the sequence of fills (and the trade/reject events derived from
// them) the order causes. It is deliberately synchronous and allocation-light
// -- concurrency lives one layer up, in the booker shard that owns the book
// this core mutates, so the core itself never needs a lock.
package matching

import (
	"lightning-exchange/domain"
	"lightning-exchange/orderbook"
)

// Core matches incoming orders against one symbol's Book. It holds no
// state of its own beyond the book pointer; a booker shard constructs one
// per symbol alongside that symbol's Book.
type Core struct {
	book *orderbook.Book
}

// NewCore wraps book in a matching core.
func NewCore(book *orderbook.Book) *Core {
	return &Core{book: book}
}

// Submit applies order to the book: it matches against the opposite side
// while prices cross, then rests any remainder for a limit order. An order
// with no open quantity produces a RejectEvent and touches nothing. Market
// and best-price orders that can't fully fill produce a RejectEvent for
// the unfilled remainder instead of resting, since this core has no
// concept of order-type conversion -- that's the booker's job.
//
// Events are returned in causal order: every FillEvent for a price level
// precedes the TradeEvent that summarizes it.
func (c *Core) Submit(order *domain.Order) []domain.MatchEvent {
	var events []domain.MatchEvent
	if order.OpenQty <= 0 {
		return append(events, domain.RejectEvent{Order: order, Reason: "order with zero quantity"})
	}
	opposite := c.book.Asks
	if order.Side == domain.SideSell {
		opposite = c.book.Bids
	}

	for !order.IsFilled() {
		level := opposite.GetBestLevel()
		if level == nil || level.Orders.Len() == 0 {
			break
		}
		if order.OrderType == domain.OrderTypeLimit && !priceCrosses(order, level.Price1000x) {
			break
		}

		levelPrice := level.Price1000x
		levelQty := int64(0)

		for level.Orders.Len() > 0 && !order.IsFilled() {
			resting := level.FrontOrder()
			qty := min64(order.OpenQty, resting.OpenQty)

			c.book.Fill(resting.UniqueID, qty)
			order.Fill(qty)
			levelQty += qty

			events = append(events, domain.FillEvent{
				Incoming: order,
				Resting:  resting,
				Quantity: qty,
				Price:    levelPrice,
			})

			level = opposite.GetLevel(levelPrice)
			if level == nil {
				break
			}
		}

		if levelQty > 0 {
			trade := domain.TradeEvent{
				Symbol:   order.Symbol,
				Quantity: levelQty,
				Price:    levelPrice,
			}
			orderbook.Depth5(c.book.Asks, &trade.AskLevels)
			orderbook.Depth5(c.book.Bids, &trade.BidLevels)
			events = append(events, trade)
		}
	}

	switch {
	case order.IsFilled():
		// Fully consumed against the book; nothing rests.
	case order.OrderType == domain.OrderTypeLimit:
		c.book.Insert(order)
	default:
		events = append(events, domain.RejectEvent{
			Order:  order,
			Reason: "non-limit order could not be fully filled",
		})
	}

	return events
}

// Cancel removes a resting order by UniqueID. Returns a non-nil
// CancelRejectEvent if the id isn't resting -- most commonly because it
// already fully filled, which is not an error on the wire, just a race
// the matching core has to tolerate.
func (c *Core) Cancel(uniqueID int64, symbol string) *domain.CancelRejectEvent {
	if order := c.book.Cancel(uniqueID); order != nil {
		return nil
	}
	return &domain.CancelRejectEvent{
		UniqueID: uniqueID,
		Symbol:   symbol,
		Reason:   "order not resting",
	}
}

func priceCrosses(order *domain.Order, levelPrice int64) bool {
	if order.Side == domain.SideBuy {
		return order.Price1000x >= levelPrice
	}
	return order.Price1000x <= levelPrice
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
