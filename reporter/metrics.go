package reporter

import (
	"github.com/prometheus/client_golang/prometheus"

	"lightning-exchange/domain"
)

// MetricsSink wraps another Sink and counts every event kind via
// Prometheus counters, so a deployment can alert on reject rates or
// validation failures without parsing logs.
type MetricsSink struct {
	next Sink

	orderTicks      prometheus.Counter
	tradeTicks      prometheus.Counter
	l2TicksArrived  prometheus.Counter
	l2TicksGenerated *prometheus.CounterVec
	rangedTicks     prometheus.Counter
	rejections      *prometheus.CounterVec
}

var _ Sink = (*MetricsSink)(nil)

// NewMetricsSink wraps next, registering its counters with reg.
func NewMetricsSink(next Sink, reg prometheus.Registerer) *MetricsSink {
	s := &MetricsSink{
		next: next,
		orderTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booker_exchange_order_ticks_total",
			Help: "Exchange order/cancel ticks observed.",
		}),
		tradeTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booker_exchange_trade_ticks_total",
			Help: "Exchange trade ticks observed.",
		}),
		l2TicksArrived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booker_exchange_l2_ticks_total",
			Help: "Exchange-published L2 snapshots observed.",
		}),
		l2TicksGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booker_generated_l2_ticks_total",
			Help: "L2 ticks generated by the booker, labeled by validation result.",
		}, []string{"result"}),
		rangedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booker_ranged_ticks_total",
			Help: "Ranged analytics windows closed.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booker_order_rejections_total",
			Help: "Order/cancel rejections, labeled by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(s.orderTicks, s.tradeTicks, s.l2TicksArrived, s.l2TicksGenerated, s.rangedTicks, s.rejections)
	return s
}

func (s *MetricsSink) ExchangeOrderTickArrived(tick *domain.Order) {
	s.orderTicks.Inc()
	s.next.ExchangeOrderTickArrived(tick)
}

func (s *MetricsSink) ExchangeTradeTickArrived(tick *domain.TradeTick) {
	s.tradeTicks.Inc()
	s.next.ExchangeTradeTickArrived(tick)
}

func (s *MetricsSink) ExchangeL2TickArrived(tick *domain.L2Tick) {
	s.l2TicksArrived.Inc()
	s.next.ExchangeL2TickArrived(tick)
}

func (s *MetricsSink) L2TickGenerated(tick *domain.GeneratedL2Tick) {
	result := "ok"
	if !tick.Result {
		result = "validation_failed"
	}
	s.l2TicksGenerated.WithLabelValues(result).Inc()
	s.next.L2TickGenerated(tick)
}

func (s *MetricsSink) RangedTickGenerated(tick *domain.RangedTick) {
	s.rangedTicks.Inc()
	s.next.RangedTickGenerated(tick)
}

func (s *MetricsSink) OrderRejected(rejection *domain.OrderRejection) {
	s.rejections.WithLabelValues(rejection.Reason).Inc()
	s.next.OrderRejected(rejection)
}
