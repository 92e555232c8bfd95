package booker

import (
	"testing"

	"lightning-exchange/domain"
	"lightning-exchange/orderbook"
	"lightning-exchange/validator"
)

func newTestShard() (*Shard, *captureSink) {
	sink := &captureSink{}
	return New(orderbook.HashMapList, sink, validator.New(), true), sink
}

func order(id int64, symbol string, side domain.Side, price, qty, t int64) *domain.Order {
	return domain.NewOrder(id, symbol, side, domain.OrderTypeLimit, price, qty, t)
}

func TestAddRestsUnmatchedLimitOrder(t *testing.T) {
	s, sink := newTestShard()

	s.Add(order(1, "600000", domain.SideBuy, 10500, 100, 93000001))

	if len(sink.generated) != 0 {
		t.Fatalf("expected no trade from a single resting order, got %d", len(sink.generated))
	}
	sym := s.symbolFor("600000")
	if sym.book.BestBid() != 10500 {
		t.Fatalf("expected best bid 10500, got %d", sym.book.BestBid())
	}
}

func TestAddMatchesCrossingOrderAndEmitsTrade(t *testing.T) {
	s, sink := newTestShard()

	s.Add(order(1, "600000", domain.SideSell, 10500, 100, 93000001))
	s.Add(order(2, "600000", domain.SideBuy, 10500, 100, 93000002))

	if len(sink.generated) != 1 {
		t.Fatalf("expected exactly one generated l2 tick, got %d", len(sink.generated))
	}
	tick := sink.generated[0]
	if tick.Price1000x != 10500 || tick.Quantity != 100 {
		t.Errorf("expected price 10500 qty 100, got price %d qty %d", tick.Price1000x, tick.Quantity)
	}
	if tick.AskUniqueID != 1 || tick.BidUniqueID != 2 {
		t.Errorf("expected ask=1 bid=2, got ask=%d bid=%d", tick.AskUniqueID, tick.BidUniqueID)
	}
	if !tick.Result {
		t.Error("expected validation to pass with no failed symbols")
	}
}

func TestAddPartialFillThenCancelRemainder(t *testing.T) {
	s, sink := newTestShard()

	s.Add(order(1, "600000", domain.SideSell, 10500, 100, 93000001))
	s.Add(order(2, "600000", domain.SideBuy, 10500, 40, 93000002))

	if len(sink.generated) != 1 || sink.generated[0].Quantity != 40 {
		t.Fatalf("expected one trade of 40, got %#v", sink.generated)
	}

	cancel := domain.NewOrder(1, "600000", domain.SideSell, domain.OrderTypeCancel, 0, 0, 93000003)
	s.Add(cancel)

	sym := s.symbolFor("600000")
	if sym.book.BestAsk() != 0 {
		t.Errorf("expected ask side empty after cancelling the remainder, got %d", sym.book.BestAsk())
	}
	if len(sink.rejections) != 0 {
		t.Errorf("expected the cancel to succeed, got rejections %#v", sink.rejections)
	}
}

func TestCancelOfUnknownOrderIsRejected(t *testing.T) {
	s, sink := newTestShard()

	cancel := domain.NewOrder(99, "600000", domain.SideBuy, domain.OrderTypeCancel, 0, 0, 93000001)
	s.Add(cancel)

	if len(sink.rejections) != 1 {
		t.Fatalf("expected exactly one rejection, got %d", len(sink.rejections))
	}
}

func TestStepPriceSweepMatchesBestPriceFirst(t *testing.T) {
	s, sink := newTestShard()

	s.Add(order(1, "600000", domain.SideSell, 10500, 50, 93000001))
	s.Add(order(2, "600000", domain.SideSell, 10400, 50, 93000002))
	s.Add(order(3, "600000", domain.SideSell, 10600, 50, 93000003))

	// A marketable buy for 150 at 10600 should sweep 10400 then 10500 then 10600.
	s.Add(order(4, "600000", domain.SideBuy, 10600, 150, 93000004))

	if len(sink.generated) != 3 {
		t.Fatalf("expected 3 trades sweeping 3 price levels, got %d", len(sink.generated))
	}
	prices := []int64{sink.generated[0].Price1000x, sink.generated[1].Price1000x, sink.generated[2].Price1000x}
	want := []int64{10400, 10500, 10600}
	for i := range want {
		if prices[i] != want[i] {
			t.Errorf("trade %d: expected price %d, got %d", i, want[i], prices[i])
		}
	}

	// Each tick must carry the book's depth as of its own level's
	// completion, not the fully-drained state after the whole sweep.
	if got := sink.generated[0].AskLevels[0]; got.Price1000x != 10500 || got.Quantity != 50 {
		t.Errorf("trade 0: expected remaining top ask 10500x50 after the first level, got %+v", got)
	}
	if got := sink.generated[0].AskLevels[1]; got.Price1000x != 10600 || got.Quantity != 50 {
		t.Errorf("trade 0: expected second ask level 10600x50, got %+v", got)
	}
	if got := sink.generated[1].AskLevels[0]; got.Price1000x != 10600 || got.Quantity != 50 {
		t.Errorf("trade 1: expected remaining top ask 10600x50 after the second level, got %+v", got)
	}
	if got := sink.generated[1].AskLevels[1]; got.Price1000x != 0 || got.Quantity != 0 {
		t.Errorf("trade 1: expected only one remaining ask level, got second level %+v", got)
	}
	if got := sink.generated[2].AskLevels[0]; got.Price1000x != 0 || got.Quantity != 0 {
		t.Errorf("trade 2: expected no remaining ask depth after the sweep fully fills, got %+v", got)
	}
}

func TestCallAuctionOrdersDoNotMatchUntilContinuousStage(t *testing.T) {
	s, sink := newTestShard()

	s.Add(order(1, "600000", domain.SideSell, 10500, 100, 91500000))
	s.Add(order(2, "600000", domain.SideBuy, 10500, 100, 91800000))

	if len(sink.generated) != 0 {
		t.Fatalf("expected no trades during call auction accumulation, got %d", len(sink.generated))
	}

	s.SwitchToContinuousStage()

	if len(sink.generated) != 1 {
		t.Fatalf("expected the accumulated cross to trade once continuous trading begins, got %d", len(sink.generated))
	}
}

func TestSwitchToContinuousStageIsIdempotent(t *testing.T) {
	s, sink := newTestShard()

	s.Add(order(1, "600000", domain.SideSell, 10500, 100, 91500000))
	s.Add(order(2, "600000", domain.SideBuy, 10500, 100, 91800000))

	s.SwitchToContinuousStage()
	s.SwitchToContinuousStage()

	if len(sink.generated) != 1 {
		t.Fatalf("expected exactly one trade across two switch calls, got %d", len(sink.generated))
	}
}

func TestSZSEMarketOrderSynthesizesLimitOrderFromTrade(t *testing.T) {
	s, sink := newTestShard()

	s.Add(order(1, "000001", domain.SideSell, 10500, 100, 93000001))

	market := domain.NewOrder(2, "000001", domain.SideBuy, domain.OrderTypeMarket, 0, 100, 93000002)
	s.Add(market)

	trade := &domain.TradeTick{AskUniqueID: 1, BidUniqueID: 2, Symbol: "000001", ExecPrice1000x: 10500, ExecQuantity: 100, ExchangeTime: 93000003}
	s.Trade(trade)

	if len(sink.generated) != 1 {
		t.Fatalf("expected the synthesized limit order to match and emit a trade, got %d", len(sink.generated))
	}
	if len(sink.tradeTicks) != 1 {
		t.Fatalf("expected the trade tick to be reported once, got %d", len(sink.tradeTicks))
	}
}

func TestMDValidatorFlagsDisagreement(t *testing.T) {
	s, sink := newTestShard()

	s.Add(order(1, "600000", domain.SideSell, 10500, 100, 93000001))
	s.Add(order(2, "600000", domain.SideBuy, 10500, 100, 93000002))

	// An exchange-published trade with a mismatching quantity for the same ids.
	mismatched := &domain.TradeTick{AskUniqueID: 1, BidUniqueID: 2, Symbol: "600000", ExecPrice1000x: 10500, ExecQuantity: 999, ExchangeTime: 93000003}
	s.Trade(mismatched)

	if !s.failed["600000"] {
		t.Error("expected the symbol to be flagged as failed validation")
	}
	if len(sink.tradeTicks) != 1 {
		t.Errorf("expected the mismatching trade tick to still be reported, got %d", len(sink.tradeTicks))
	}
}

func TestClosingAuctionTradeEmitsSyntheticTickWithoutTouchingBook(t *testing.T) {
	s, sink := newTestShard()

	trade := &domain.TradeTick{AskUniqueID: 10, BidUniqueID: 20, Symbol: "600000", ExecPrice1000x: 10500, ExecQuantity: 100, ExchangeTime: 145800000}
	s.Trade(trade)

	if len(sink.generated) != 1 {
		t.Fatalf("expected a synthetic generated tick for the closing auction trade, got %d", len(sink.generated))
	}
	sym := s.symbolFor("600000")
	if !sym.book.Asks.IsEmpty() || !sym.book.Bids.IsEmpty() {
		t.Error("expected the book to remain untouched by a closing-auction trade report")
	}
}
