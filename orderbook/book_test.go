package orderbook

import (
	"testing"

	"lightning-exchange/domain"
)

// runForBothKinds executes fn against a book built with each PriceTreeKind,
// since both implementations must agree on observable behavior.
func runForBothKinds(t *testing.T, fn func(t *testing.T, kind PriceTreeKind)) {
	t.Helper()
	for _, kind := range []PriceTreeKind{HashMapList, RedBlackTree} {
		kind := kind
		t.Run(map[PriceTreeKind]string{HashMapList: "HashMapList", RedBlackTree: "RedBlackTree"}[kind], func(t *testing.T) {
			fn(t, kind)
		})
	}
}

func limitOrder(id int64, side domain.Side, price, qty int64) *domain.Order {
	return domain.NewOrder(id, "600000", side, domain.OrderTypeLimit, price, qty, 93000000)
}

func TestInsertSetsBestPrice(t *testing.T) {
	runForBothKinds(t, func(t *testing.T, kind PriceTreeKind) {
		book := NewBook("600000", kind)
		book.Insert(limitOrder(1, domain.SideSell, 50000, 100))

		if got := book.BestAsk(); got != 50000 {
			t.Errorf("expected best ask 50000, got %d", got)
		}

		book.Insert(limitOrder(2, domain.SideBuy, 49000, 100))
		if got := book.BestBid(); got != 49000 {
			t.Errorf("expected best bid 49000, got %d", got)
		}
	})
}

func TestCancelRemovesOrderAndEmptyLevel(t *testing.T) {
	runForBothKinds(t, func(t *testing.T, kind PriceTreeKind) {
		book := NewBook("600000", kind)
		book.Insert(limitOrder(1, domain.SideSell, 50000, 100))

		if order := book.Cancel(1); order == nil {
			t.Fatal("expected cancel to find the order")
		}
		if got := book.BestAsk(); got != 0 {
			t.Errorf("expected asks empty after cancel, got best ask %d", got)
		}
		if order := book.Cancel(1); order != nil {
			t.Error("expected second cancel of the same id to miss")
		}
	})
}

func TestPricePriority(t *testing.T) {
	runForBothKinds(t, func(t *testing.T, kind PriceTreeKind) {
		book := NewBook("600000", kind)
		book.Insert(limitOrder(1, domain.SideSell, 51000, 100))
		book.Insert(limitOrder(2, domain.SideSell, 50000, 100)) // best
		book.Insert(limitOrder(3, domain.SideSell, 52000, 100))

		if got := book.BestAsk(); got != 50000 {
			t.Errorf("expected best ask 50000, got %d", got)
		}
	})
}

func TestFillReducesLevelVolumeAndRemovesOnZero(t *testing.T) {
	runForBothKinds(t, func(t *testing.T, kind PriceTreeKind) {
		book := NewBook("600000", kind)
		book.Insert(limitOrder(1, domain.SideSell, 50000, 300))

		order := book.Fill(1, 100)
		if order == nil {
			t.Fatal("expected fill to find the order")
		}
		level := book.Asks.GetLevel(50000)
		if level == nil {
			t.Fatal("expected level to still exist after partial fill")
		}
		if level.Volume != 200 {
			t.Errorf("expected level volume 200 after partial fill, got %d", level.Volume)
		}
		if order.OpenQty != 200 {
			t.Errorf("expected order open qty 200, got %d", order.OpenQty)
		}

		book.Fill(1, 200)
		if level := book.Asks.GetLevel(50000); level != nil {
			t.Error("expected level to be removed once fully filled")
		}
		if _, ok := book.Lookup(1); ok {
			t.Error("expected order to be gone from the index once fully filled")
		}
	})
}

func TestFIFOWithinLevel(t *testing.T) {
	runForBothKinds(t, func(t *testing.T, kind PriceTreeKind) {
		book := NewBook("600000", kind)
		book.Insert(limitOrder(1, domain.SideSell, 50000, 100))
		book.Insert(limitOrder(2, domain.SideSell, 50000, 100))
		book.Insert(limitOrder(3, domain.SideSell, 50000, 100))

		level := book.Asks.GetBestLevel()
		if level == nil {
			t.Fatal("expected level to exist")
		}
		if level.Orders.Len() != 3 {
			t.Fatalf("expected 3 orders, got %d", level.Orders.Len())
		}

		front := level.FrontOrder()
		if front.UniqueID != 1 {
			t.Errorf("expected oldest order first, got id %d", front.UniqueID)
		}
	})
}

func TestBidDepthDescends(t *testing.T) {
	runForBothKinds(t, func(t *testing.T, kind PriceTreeKind) {
		book := NewBook("600000", kind)
		book.Insert(limitOrder(1, domain.SideBuy, 49000, 100))
		book.Insert(limitOrder(2, domain.SideBuy, 50000, 100)) // best
		book.Insert(limitOrder(3, domain.SideBuy, 48000, 100))

		depth := book.Bids.GetDepth(3)
		if len(depth) != 3 {
			t.Fatalf("expected 3 levels, got %d", len(depth))
		}
		want := []int64{50000, 49000, 48000}
		for i, price := range want {
			if depth[i].Price1000x != price {
				t.Errorf("level %d: expected price %d, got %d", i, price, depth[i].Price1000x)
			}
		}
	})
}

func TestAskDepthAscends(t *testing.T) {
	runForBothKinds(t, func(t *testing.T, kind PriceTreeKind) {
		book := NewBook("600000", kind)
		book.Insert(limitOrder(1, domain.SideSell, 51000, 100))
		book.Insert(limitOrder(2, domain.SideSell, 50000, 100)) // best
		book.Insert(limitOrder(3, domain.SideSell, 52000, 100))

		depth := book.Asks.GetDepth(3)
		if len(depth) != 3 {
			t.Fatalf("expected 3 levels, got %d", len(depth))
		}
		want := []int64{50000, 51000, 52000}
		for i, price := range want {
			if depth[i].Price1000x != price {
				t.Errorf("level %d: expected price %d, got %d", i, price, depth[i].Price1000x)
			}
		}
	})
}

func TestCrossedDetection(t *testing.T) {
	runForBothKinds(t, func(t *testing.T, kind PriceTreeKind) {
		book := NewBook("600000", kind)
		if book.Crossed() {
			t.Fatal("empty book should not be crossed")
		}
		book.Insert(limitOrder(1, domain.SideBuy, 50000, 100))
		book.Insert(limitOrder(2, domain.SideSell, 50100, 100))
		if book.Crossed() {
			t.Error("50000 bid / 50100 ask should not be crossed")
		}
		book.Insert(limitOrder(3, domain.SideBuy, 50200, 100))
		if !book.Crossed() {
			t.Error("50200 bid / 50100 ask should be crossed")
		}
	})
}

func TestDepth5ZeroPads(t *testing.T) {
	runForBothKinds(t, func(t *testing.T, kind PriceTreeKind) {
		book := NewBook("600000", kind)
		book.Insert(limitOrder(1, domain.SideSell, 50000, 100))

		var dst [5]domain.PriceQty
		Depth5(book.Asks, &dst)

		if dst[0].Price1000x != 50000 || dst[0].Quantity != 100 {
			t.Errorf("expected first slot populated, got %+v", dst[0])
		}
		for i := 1; i < 5; i++ {
			if dst[i] != (domain.PriceQty{}) {
				t.Errorf("expected slot %d zero-padded, got %+v", i, dst[i])
			}
		}
	})
}
