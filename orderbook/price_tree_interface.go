// Package orderbook implements the per-symbol price-time-priority book:
// two ordered sides (bids descending, asks ascending), each a price-keyed
// structure of FIFO order queues. Two interchangeable implementations are
// provided -- a HashMap+doubly-linked-list tree for the common case of a
// handful of active price levels, and a red-black-tree-backed variant for
// symbols that accumulate many simultaneous levels.
package orderbook

import (
	"container/list"

	"lightning-exchange/domain"
)

// PriceTreeInterface is one side (bids or asks) of a Book.
type PriceTreeInterface interface {
	// Insert adds a resting order to its price level, creating the level
	// if this is the first order at that price.
	Insert(order *domain.Order)

	// Fill applies a fill of qty against order: it reduces the order's
	// open quantity and its level's aggregate volume, and fully removes
	// the order (and, if now empty, its level) once open quantity reaches
	// zero.
	Fill(order *domain.Order, qty int64)

	// Remove fully removes an order regardless of remaining open
	// quantity (used for cancel).
	Remove(order *domain.Order)

	// GetBestPrice returns the best price, or 0 if the side is empty.
	GetBestPrice() int64

	// GetBestLevel returns the best price level, or nil if empty.
	GetBestLevel() *Level

	// GetLevel returns the level at an exact price, or nil.
	GetLevel(price1000x int64) *Level

	// GetDepth returns up to maxLevels levels, best price first.
	GetDepth(maxLevels int) []Level

	IsEmpty() bool
	Size() int
}

// Level is a single price level: a price and the FIFO queue of orders
// resting there, plus the running sum of their open quantities.
type Level struct {
	Price1000x int64
	Orders     *list.List // FIFO queue of *domain.Order, time priority
	Volume     int64
}

// FrontOrder returns the oldest resting order at this level, or nil if
// empty.
func (l *Level) FrontOrder() *domain.Order {
	if l == nil || l.Orders.Len() == 0 {
		return nil
	}
	return l.Orders.Front().Value.(*domain.Order)
}
