package reporter

import (
	"go.uber.org/zap"

	"lightning-exchange/domain"
)

// LogSink writes every event as a structured log line. The root binary
// (main.go) uses it behind a MetricsSink; the cmd/ binaries use NopSink
// instead -- a real deployment would plug in
// persistence, a TCP fan-out server, or both, per the external reporter
// implementations this interface exists for.
type LogSink struct {
	log *zap.Logger
}

var _ Sink = (*LogSink)(nil)

// NewLogSink wraps log. Pass zap.NewNop() in tests that don't want
// output.
func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("reporter")}
}

func (s *LogSink) ExchangeOrderTickArrived(tick *domain.Order) {
	s.log.Debug("exchange order tick",
		zap.Int64("unique_id", tick.UniqueID),
		zap.String("symbol", tick.Symbol),
		zap.String("side", tick.Side.String()),
		zap.String("order_type", tick.OrderType.String()),
		zap.Int64("price_1000x", tick.Price1000x),
		zap.Int64("quantity", tick.Quantity),
		zap.Int64("exchange_time", tick.ExchangeTime),
	)
}

func (s *LogSink) ExchangeTradeTickArrived(tick *domain.TradeTick) {
	s.log.Debug("exchange trade tick",
		zap.String("symbol", tick.Symbol),
		zap.Int64("ask_unique_id", tick.AskUniqueID),
		zap.Int64("bid_unique_id", tick.BidUniqueID),
		zap.Int64("exec_price_1000x", tick.ExecPrice1000x),
		zap.Int64("exec_quantity", tick.ExecQuantity),
	)
}

func (s *LogSink) ExchangeL2TickArrived(tick *domain.L2Tick) {
	s.log.Debug("exchange l2 tick", zap.String("symbol", tick.Symbol), zap.Int64("exchange_time", tick.ExchangeTime))
}

func (s *LogSink) L2TickGenerated(tick *domain.GeneratedL2Tick) {
	if !tick.Result {
		s.log.Warn("generated l2 tick failed validation",
			zap.String("symbol", tick.Symbol),
			zap.Int64("exchange_time", tick.ExchangeTime),
		)
		return
	}
	s.log.Debug("generated l2 tick",
		zap.String("symbol", tick.Symbol),
		zap.Int64("price_1000x", tick.Price1000x),
		zap.Int64("quantity", tick.Quantity),
	)
}

func (s *LogSink) RangedTickGenerated(tick *domain.RangedTick) {
	s.log.Debug("ranged tick",
		zap.String("symbol", tick.Symbol),
		zap.Int64("exchange_time", tick.ExchangeTime),
		zap.Int64("active_buy_number", tick.ActiveBuyNumber),
		zap.Int64("active_sell_number", tick.ActiveSellNumber),
	)
}

func (s *LogSink) OrderRejected(rejection *domain.OrderRejection) {
	s.log.Warn("order rejected",
		zap.Int64("unique_id", rejection.UniqueID),
		zap.String("symbol", rejection.Symbol),
		zap.String("reason", rejection.Reason),
	)
}
