package booker

import "lightning-exchange/domain"

// captureSink records every event it receives, for assertions, instead
// of discarding or logging them.
type captureSink struct {
	orderTicks  []*domain.Order
	tradeTicks  []*domain.TradeTick
	l2Arrived   []*domain.L2Tick
	generated   []*domain.GeneratedL2Tick
	ranged      []*domain.RangedTick
	rejections  []*domain.OrderRejection
}

func (c *captureSink) ExchangeOrderTickArrived(tick *domain.Order)      { c.orderTicks = append(c.orderTicks, tick) }
func (c *captureSink) ExchangeTradeTickArrived(tick *domain.TradeTick)  { c.tradeTicks = append(c.tradeTicks, tick) }
func (c *captureSink) ExchangeL2TickArrived(tick *domain.L2Tick)        { c.l2Arrived = append(c.l2Arrived, tick) }
func (c *captureSink) L2TickGenerated(tick *domain.GeneratedL2Tick)     { c.generated = append(c.generated, tick) }
func (c *captureSink) RangedTickGenerated(tick *domain.RangedTick)      { c.ranged = append(c.ranged, tick) }
func (c *captureSink) OrderRejected(rejection *domain.OrderRejection)   { c.rejections = append(c.rejections, rejection) }
