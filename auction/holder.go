// Package auction accumulates orders during the pre-open call auction and
// replays them, one at a time, once continuous trading begins. SSE and
// SZSE both run a call auction from market open until 09:25:00 that
// derives a single auction price without generating any intermediate L2
// ticks; this holder lets the booker treat that phase uniformly with
// continuous trading by feeding every accumulated order back through the
// ordinary matching path in arrival order once the auction resolves.
package auction

import (
	"lightning-exchange/domain"
)

// Holder buffers one symbol's pre-open orders and their auction-phase
// cancels/fills, then drains them in original arrival order.
type Holder struct {
	bidOrders map[int64]*domain.Order
	askOrders map[int64]*domain.Order
	queue     []int64
}

// NewHolder creates an empty auction holder.
func NewHolder() *Holder {
	return &Holder{
		bidOrders: make(map[int64]*domain.Order),
		askOrders: make(map[int64]*domain.Order),
	}
}

// Push records an order tick arriving during the auction phase. A cancel
// removes the matching resting entry outright rather than being queued
// itself -- pop() will simply skip an id that's no longer in either map.
func (h *Holder) Push(order *domain.Order) {
	if order.OrderType == domain.OrderTypeCancel {
		delete(h.bidOrders, order.UniqueID)
		delete(h.askOrders, order.UniqueID)
		return
	}

	if order.Side == domain.SideBuy {
		h.bidOrders[order.UniqueID] = order
	} else {
		h.askOrders[order.UniqueID] = order
	}
	h.queue = append(h.queue, order.UniqueID)
}

// Trade applies an auction-phase execution report to both sides of the
// trade: it reduces each resting order's open quantity, removing the
// order entirely once it's fully consumed.
func (h *Holder) Trade(trade *domain.TradeTick) {
	ask, askOK := h.askOrders[trade.AskUniqueID]
	bid, bidOK := h.bidOrders[trade.BidUniqueID]
	if !askOK || !bidOK {
		return
	}

	ask.Fill(trade.ExecQuantity)
	if ask.IsFilled() {
		delete(h.askOrders, trade.AskUniqueID)
	}

	bid.Fill(trade.ExecQuantity)
	if bid.IsFilled() {
		delete(h.bidOrders, trade.BidUniqueID)
	}
}

// Pop dequeues the next surviving order in arrival order, skipping ids
// that were fully consumed or cancelled before being drained. Returns nil
// once the queue is exhausted.
func (h *Holder) Pop() *domain.Order {
	for len(h.queue) > 0 {
		next := h.queue[0]
		h.queue = h.queue[1:]

		if order, ok := h.bidOrders[next]; ok {
			delete(h.bidOrders, next)
			return order
		}
		if order, ok := h.askOrders[next]; ok {
			delete(h.askOrders, next)
			return order
		}
	}
	return nil
}

// Len reports how many undrained ids remain queued, including ids that
// will be skipped as stale; it is an upper bound, not an exact count of
// live orders.
func (h *Holder) Len() int { return len(h.queue) }
