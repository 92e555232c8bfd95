package ranged

import (
	"testing"

	"lightning-exchange/domain"
	"lightning-exchange/orderbook"
)

func TestAlignTimeFloorsToThreeSecondGrid(t *testing.T) {
	cases := map[int64]int64{
		93000500:  93000000,
		93003999:  93003000,
		93059999:  93057000,
		93100001:  93100000 / 1000 * 1000, // minute rolls, seconds resets to 0
	}
	for in, want := range cases {
		if got := alignTime(in); got != want {
			t.Errorf("alignTime(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestOnOrderBelowWindowDurationDoesNotEmit(t *testing.T) {
	a := New()
	book := orderbook.NewBook("600000", orderbook.HashMapList)
	book.Insert(domain.NewOrder(1, "600000", domain.SideSell, domain.OrderTypeLimit, 10000, 100, domain.TimeContinuousOpen))

	rt := a.OnOrder(domain.NewOrder(2, "600000", domain.SideBuy, domain.OrderTypeLimit, 9900, 100, domain.TimeContinuousOpen+500), book)
	if rt != nil {
		t.Fatalf("expected no window to close yet, got %+v", rt)
	}
}

func TestOnOrderEmitsAfterThreeSeconds(t *testing.T) {
	a := New()
	book := orderbook.NewBook("600000", orderbook.HashMapList)
	book.Insert(domain.NewOrder(1, "600000", domain.SideSell, domain.OrderTypeLimit, 10000, 100, domain.TimeContinuousOpen))

	start := domain.TimeContinuousOpen
	a.OnOrder(domain.NewOrder(2, "600000", domain.SideBuy, domain.OrderTypeLimit, 9900, 50, start), book)
	a.OnOrder(domain.NewOrder(3, "600000", domain.SideBuy, domain.OrderTypeLimit, 9900, 50, start+1000), book)

	rt := a.OnOrder(domain.NewOrder(4, "600000", domain.SideBuy, domain.OrderTypeLimit, 9900, 50, start+3000), book)
	if rt == nil {
		t.Fatal("expected window to close at the 3-second boundary")
	}
	if rt.ActiveBuyNumber != 2 {
		t.Errorf("expected 2 active buy orders aggregated, got %d", rt.ActiveBuyNumber)
	}
}

func TestOnFillOutsideContinuousWindowIsIgnored(t *testing.T) {
	a := New()
	book := orderbook.NewBook("600000", orderbook.HashMapList)

	if rt := a.OnFill("600000", domain.SideBuy, 100, 10000, domain.TimeCallAuctionCutover, book); rt != nil {
		t.Error("expected call-auction-phase fill to be ignored by the ranged accumulator")
	}
}

func TestOnFillAggregatesNotionalAndBigOrderFlag(t *testing.T) {
	a := New()
	book := orderbook.NewBook("600000", orderbook.HashMapList)

	start := domain.TimeContinuousOpen
	a.OnFill("600000", domain.SideBuy, 100000, 1000, start, book) // notional 100,000,000 >= threshold

	rt := a.OnFill("600000", domain.SideBuy, 100, 10000, start+3000, book)
	if rt == nil {
		t.Fatal("expected window to close")
	}
	if rt.BigAskAmount1000x != 100_000_000 {
		t.Errorf("expected big-ask notional to have been recorded, got %d", rt.BigAskAmount1000x)
	}
	// The fill that closes the window opens the next one, so only the
	// first fill is aggregated.
	if rt.ActiveTradedBuyNumber != 1 {
		t.Errorf("expected 1 fill aggregated, got %d", rt.ActiveTradedBuyNumber)
	}
}
