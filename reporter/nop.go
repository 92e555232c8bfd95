package reporter

import "lightning-exchange/domain"

// NopSink discards every event. Useful for benchmarks and tests that
// only care about the booker's internal state, not what gets reported.
type NopSink struct{}

var _ Sink = NopSink{}

func (NopSink) ExchangeOrderTickArrived(*domain.Order)            {}
func (NopSink) ExchangeTradeTickArrived(*domain.TradeTick)        {}
func (NopSink) ExchangeL2TickArrived(*domain.L2Tick)              {}
func (NopSink) L2TickGenerated(*domain.GeneratedL2Tick)           {}
func (NopSink) RangedTickGenerated(*domain.RangedTick)            {}
func (NopSink) OrderRejected(*domain.OrderRejection)              {}
