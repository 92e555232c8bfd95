package validator

import (
	"testing"

	"lightning-exchange/domain"
)

func generated(symbol string, price, qty int64) *domain.GeneratedL2Tick {
	return &domain.GeneratedL2Tick{Symbol: symbol, Price1000x: price, Quantity: qty}
}

func trade(symbol string, askID, bidID, price, qty int64) *domain.TradeTick {
	return &domain.TradeTick{Symbol: symbol, AskUniqueID: askID, BidUniqueID: bidID, ExecPrice1000x: price, ExecQuantity: qty}
}

func depthLevels(base int64) [5]domain.PriceQty {
	return [5]domain.PriceQty{
		{Price1000x: base, Quantity: 100},
		{Price1000x: base + 10, Quantity: 200},
		{Price1000x: base + 20, Quantity: 300},
	}
}

func l2WithSides(symbol string, askBase, bidBase int64) *domain.L2Tick {
	tick := &domain.L2Tick{Symbol: symbol}
	asks, bids := depthLevels(askBase), depthLevels(bidBase)
	copy(tick.AskLevels[:3], asks[:])
	copy(tick.BidLevels[:3], bids[:])
	return tick
}

func TestCheckSucceedsForRecordedTicks(t *testing.T) {
	v := New()
	v.RecordGenerated(generated("600875", 22330, 100))
	v.RecordGenerated(generated("600875", 22330, 200))
	v.RecordGenerated(generated("600875", 22330, 300))

	if !v.CheckTrade(trade("600875", 10001, 10002, 22330, 100)) {
		t.Error("expected first recorded tick to check out")
	}
	if !v.CheckTrade(trade("600875", 20001, 20002, 22330, 200)) {
		t.Error("expected second recorded tick to check out")
	}
	if !v.CheckTrade(trade("600875", 30001, 30002, 22330, 300)) {
		t.Error("expected third recorded tick to check out")
	}
}

func TestCheckFailsForUnrecordedQuantity(t *testing.T) {
	v := New()
	v.RecordGenerated(generated("600875", 22330, 100))
	v.RecordGenerated(generated("600875", 22330, 200))
	v.RecordGenerated(generated("600875", 22330, 300))

	if v.CheckTrade(trade("600875", 50001, 10002, 22330, 400)) {
		t.Error("expected unrecorded quantity to fail the check")
	}
}

func TestCheckFailsForUnknownSymbol(t *testing.T) {
	v := New()
	v.RecordGenerated(generated("600875", 22330, 100))

	if v.CheckTrade(trade("000001", 1, 2, 22330, 100)) {
		t.Error("expected a symbol with no recorded ticks to fail")
	}
}

func TestCheckL2SucceedsForRecordedDepth(t *testing.T) {
	v := New()
	gen := generated("600875", 22330, 100)
	gen.AskLevels = depthLevels(22340)
	gen.BidLevels = depthLevels(22320)
	v.RecordGenerated(gen)

	if !v.CheckL2(l2WithSides("600875", 22340, 22320)) {
		t.Error("expected the recorded tick's depth to check out")
	}
}

func TestCheckL2FailsForDivergedDepth(t *testing.T) {
	v := New()
	gen := generated("600875", 22330, 100)
	gen.AskLevels = depthLevels(22340)
	gen.BidLevels = depthLevels(22320)
	v.RecordGenerated(gen)

	if v.CheckL2(l2WithSides("600875", 99999, 22320)) {
		t.Error("expected a diverged ask side to fail the L2 check")
	}
}

func TestCheckL2FailsForUnknownSymbol(t *testing.T) {
	v := New()
	gen := generated("600875", 22330, 100)
	gen.AskLevels = depthLevels(22340)
	gen.BidLevels = depthLevels(22320)
	v.RecordGenerated(gen)

	if v.CheckL2(l2WithSides("000001", 22340, 22320)) {
		t.Error("expected a symbol with no recorded L2 ticks to fail")
	}
}

func TestRingEvictsOldestOnceFull(t *testing.T) {
	v := New()
	for i := int64(0); i < bufferSize; i++ {
		v.RecordGenerated(generated("600875", 1, i))
	}
	if !v.CheckTrade(trade("600875", 0, 0, 1, 0)) {
		t.Fatal("expected the oldest entry to still be present before overflow")
	}

	// One more push should evict quantity 0.
	v.RecordGenerated(generated("600875", 1, bufferSize))
	if v.CheckTrade(trade("600875", 0, 0, 1, 0)) {
		t.Error("expected the oldest entry to have been evicted")
	}
	if !v.CheckTrade(trade("600875", 0, 0, 1, bufferSize)) {
		t.Error("expected the newest entry to be present")
	}
}
