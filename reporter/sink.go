// Package reporter defines the outbound boundary of the booker: every
// event the system produces -- raw exchange ticks passing through,
// generated L2/ranged ticks, and rejections -- flows out through a Sink.
// Concrete sinks (persistence, a TCP fan-out server, CSV/SQL writers) are
// external collaborators; this package only specifies the interface and
// provides the trivial sinks (no-op, logging) needed to exercise the rest
// of the module without one.
package reporter

import "lightning-exchange/domain"

// Sink receives every event the booker core produces, on its own
// goroutine -- implementations must not block the caller for long, since
// a slow sink stalls the booker shard that's feeding it.
type Sink interface {
	// ExchangeOrderTickArrived is called for each order/cancel tick the
	// booker accepts (virtual ones it synthesizes included), after the
	// tick has been applied. A tick dropped as a duplicate id is not
	// reported here.
	ExchangeOrderTickArrived(tick *domain.Order)

	// ExchangeTradeTickArrived is called for every exchange-published
	// execution report, after virtual-order synthesis and validation.
	ExchangeTradeTickArrived(tick *domain.TradeTick)

	// ExchangeL2TickArrived is called for every exchange-published L2
	// snapshot, used only for cross-validation.
	ExchangeL2TickArrived(tick *domain.L2Tick)

	// L2TickGenerated is called once per completed match (or call/close
	// auction trade) with the booker's own reconstructed snapshot.
	L2TickGenerated(tick *domain.GeneratedL2Tick)

	// RangedTickGenerated is called once per closed 3-second analytics
	// window.
	RangedTickGenerated(tick *domain.RangedTick)

	// OrderRejected is called for add/cancel/replace failures the
	// matching core or booker shard declined to apply.
	OrderRejected(rejection *domain.OrderRejection)
}
