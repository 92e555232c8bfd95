// Package booker is the central component: it owns each of its symbols'
// book, call-auction holder, and ranged accumulator, and turns the three
// envelope kinds a dispatcher hands it (order ticks, trade ticks,
// exchange L2 snapshots) into matching-core activity and reporter
// events. A Shard is single-threaded by construction -- callers are
// expected to run one per booker goroutine, fed exclusively by its own
// dispatch.EnvelopeConsumer, so none of its state needs synchronization.
package booker

import (
	"lightning-exchange/auction"
	"lightning-exchange/domain"
	"lightning-exchange/matching"
	"lightning-exchange/orderbook"
	"lightning-exchange/ranged"
	"lightning-exchange/reporter"
	"lightning-exchange/validator"
)

// Shard holds every symbol this booker goroutine is responsible for.
// Symbols are created lazily on first arrival, matching the upstream
// behavior of not requiring a pre-registered symbol list.
type Shard struct {
	priceTreeKind orderbook.PriceTreeKind
	sink          reporter.Sink
	validator     *validator.Validator // nil when validation is disabled
	advanced      bool

	symbols      map[string]*symbol
	inContinuous bool
	failed       map[string]bool
}

// symbol is everything a shard tracks for one instrument.
type symbol struct {
	book    *orderbook.Book
	core    *matching.Core
	auction *auction.Holder
	ranged  *ranged.Accumulator

	orders   map[int64]*domain.Order // orders added from 09:25:00 on, by unique id; ones held in the call auction holder are not here
	marketOrder *domain.Order        // SZSE's "market order awaiting its trade reports" residual, at most one live at a time
}

// New creates an empty shard. kind selects the price-tree implementation
// every symbol's book uses; v may be nil to run with validation disabled.
func New(kind orderbook.PriceTreeKind, sink reporter.Sink, v *validator.Validator, advancedCalculating bool) *Shard {
	return &Shard{
		priceTreeKind: kind,
		sink:          sink,
		validator:     v,
		advanced:      advancedCalculating,
		symbols:       make(map[string]*symbol),
		failed:        make(map[string]bool),
	}
}

func (s *Shard) symbolFor(name string) *symbol {
	sym, ok := s.symbols[name]
	if !ok {
		book := orderbook.NewBook(name, s.priceTreeKind)
		sym = &symbol{
			book:    book,
			core:    matching.NewCore(book),
			auction: auction.NewHolder(),
			ranged:  ranged.New(),
			orders:  make(map[int64]*domain.Order),
		}
		s.symbols[name] = sym
	}
	return sym
}

// Add applies an incoming order or cancel tick, routing it to the call
// auction holder before 09:25:00 and to the matching core afterward. A
// duplicate unique id is only legal when the new tick is a cancel for an
// order already known; anything else is logged as a rejection and
// dropped, mirroring the upstream "duplicated order" guard.
func (s *Shard) Add(tick *domain.Order) {
	sym := s.symbolFor(tick.Symbol)

	if existing, ok := sym.orders[tick.UniqueID]; ok {
		if tick.OrderType != domain.OrderTypeCancel {
			s.sink.OrderRejected(&domain.OrderRejection{
				UniqueID: tick.UniqueID,
				Symbol:   tick.Symbol,
				Reason:   "duplicate order id with non-cancel order type",
			})
			return
		}
		existing.Cancelled = true
		existing.OrderType = domain.OrderTypeCancel
		existing.ExchangeTime = tick.ExchangeTime

		s.route(sym, existing)
		delete(sym.orders, tick.UniqueID)
	} else if tick.ExchangeTime < domain.TimeCallAuctionCutover {
		// Call-auction-phase orders (and cancels targeting them) are
		// tracked only inside the holder -- they never enter the
		// per-shard dedup index, matching an order re-submitted with the
		// same id once continuous trading replays it.
		sym.auction.Push(tick)
	} else {
		if sym.marketOrder != nil && sym.marketOrder.UniqueID != tick.UniqueID {
			residual := sym.marketOrder.Clone()
			residual.OrderType = domain.OrderTypeLimit
			sym.marketOrder = nil
			s.route(sym, residual)
		}

		if tick.OrderType == domain.OrderTypeMarket {
			sym.marketOrder = tick
		} else {
			sym.orders[tick.UniqueID] = tick
			s.route(sym, tick)
		}
	}

	if s.advanced {
		if rt := sym.ranged.OnOrder(tick, sym.book); rt != nil {
			s.sink.RangedTickGenerated(rt)
		}
	}

	s.sink.ExchangeOrderTickArrived(tick)
}

// route sends an order tick into the matching core: a cancel goes to
// Core.Cancel, anything else to Core.Submit. Best-price orders are
// converted to a limit at the opposite side's current touch before
// reaching the core, since the core itself has no notion of order-type
// conversion.
func (s *Shard) route(sym *symbol, tick *domain.Order) {
	if tick.OrderType == domain.OrderTypeCancel {
		if reject := sym.core.Cancel(tick.UniqueID, tick.Symbol); reject != nil {
			s.sink.OrderRejected(&domain.OrderRejection{
				UniqueID: reject.UniqueID,
				Symbol:   reject.Symbol,
				Reason:   reject.Reason,
			})
		}
		return
	}

	if tick.OrderType == domain.OrderTypeBestPrice {
		var price int64
		if tick.Side == domain.SideBuy {
			price = sym.book.BestAsk()
		} else {
			price = sym.book.BestBid()
		}
		if price == 0 {
			s.sink.OrderRejected(&domain.OrderRejection{
				UniqueID: tick.UniqueID,
				Symbol:   tick.Symbol,
				Reason:   "best-price order with no opposite-side liquidity to peg to",
			})
			return
		}
		tick.Price1000x = price
		tick.OrderType = domain.OrderTypeLimit
	}

	events := sym.core.Submit(tick)
	s.handleEvents(sym, events)
}

// handleEvents drains a Submit call's events: every FillEvent feeds the
// ranged accumulator, and the first FillEvent at a given price also
// seeds the GeneratedL2Tick that its closing TradeEvent reports, mirroring
// on_fill()-before-on_trade() ordering upstream.
func (s *Shard) handleEvents(sym *symbol, events []domain.MatchEvent) {
	var pending *domain.GeneratedL2Tick

	for _, ev := range events {
		switch e := ev.(type) {
		case domain.FillEvent:
			if pending == nil {
				pending = &domain.GeneratedL2Tick{Symbol: e.Incoming.Symbol, ExchangeTime: e.Incoming.ExchangeTime}
				if e.Incoming.Side == domain.SideBuy {
					pending.BidUniqueID = e.Incoming.UniqueID
					pending.AskUniqueID = e.Resting.UniqueID
				} else {
					pending.AskUniqueID = e.Incoming.UniqueID
					pending.BidUniqueID = e.Resting.UniqueID
				}
			}

			if s.advanced {
				if rt := sym.ranged.OnFill(e.Incoming.Symbol, e.Incoming.Side, e.Quantity, e.Price, e.Incoming.ExchangeTime, sym.book); rt != nil {
					s.sink.RangedTickGenerated(rt)
				}
			}

		case domain.TradeEvent:
			if pending == nil {
				continue
			}
			pending.Price1000x = e.Price
			pending.Quantity = e.Quantity
			pending.Result = !s.failed[e.Symbol]

			// Use the depth snapshot the matching core captured at this
			// level's completion, not the book's current (possibly
			// further-drained) state -- a multi-level sweep must report
			// each level's own point-in-time depth.
			pending.AskLevels = e.AskLevels
			pending.BidLevels = e.BidLevels

			if s.validator != nil {
				s.validator.RecordGenerated(pending)
			}
			s.sink.L2TickGenerated(pending)
			pending = nil

		case domain.RejectEvent:
			s.sink.OrderRejected(&domain.OrderRejection{
				UniqueID: e.Order.UniqueID,
				Symbol:   e.Order.Symbol,
				Reason:   e.Reason,
			})
		}
	}
}

// Trade applies an exchange-published trade report. For SZSE, a live
// residual market order makes this a synthetic limit-order insertion
// followed by the trade's own accounting; for SSE, an unmatched leg (one
// the booker never saw an order tick for) is backfilled the same way.
// Reports that land inside a call-auction or closing-auction window skip
// the matching core entirely and are reported as synthetic
// GeneratedL2Ticks, since no book state changes during those windows.
func (s *Shard) Trade(trade *domain.TradeTick) {
	sym := s.symbolFor(trade.Symbol)

	if sym.marketOrder != nil {
		virtual := domain.NewOrder(sym.marketOrder.UniqueID, trade.Symbol, sym.marketOrder.Side, domain.OrderTypeLimit, trade.ExecPrice1000x, trade.ExecQuantity, sym.marketOrder.ExchangeTime)
		delete(sym.orders, sym.marketOrder.UniqueID)
		s.Add(virtual)

		remaining := sym.marketOrder.Quantity - trade.ExecQuantity
		sym.marketOrder.Price1000x = trade.ExecPrice1000x
		sym.marketOrder.Quantity = remaining
		sym.marketOrder.OpenQty = remaining
		if remaining <= 0 {
			sym.marketOrder = nil
		}

		s.sink.ExchangeTradeTickArrived(trade)
		return
	}

	seconds := trade.ExchangeTime / 1000

	if seconds >= 92500 && seconds < 93000 {
		sym.auction.Trade(trade)
	}

	if (seconds >= 92500 && seconds < 93000) || (seconds >= 145700 && seconds <= 151000) {
		generated := &domain.GeneratedL2Tick{
			Symbol:       trade.Symbol,
			Price1000x:   trade.ExecPrice1000x,
			Quantity:     trade.ExecQuantity,
			AskUniqueID:  trade.AskUniqueID,
			BidUniqueID:  trade.BidUniqueID,
			ExchangeTime: trade.ExchangeTime,
			Result:       true,
		}
		s.sink.L2TickGenerated(generated)
		s.sink.ExchangeTradeTickArrived(trade)
		return
	}

	if _, ok := sym.orders[trade.AskUniqueID]; !ok {
		s.backfill(sym, trade, domain.SideSell, trade.AskUniqueID)
	}
	if _, ok := sym.orders[trade.BidUniqueID]; !ok {
		s.backfill(sym, trade, domain.SideBuy, trade.BidUniqueID)
	}

	if s.validator != nil {
		if !s.validator.CheckTrade(trade) {
			s.failed[trade.Symbol] = true
		}
	}

	s.sink.ExchangeTradeTickArrived(trade)
}

// backfill synthesizes the limit order tick an SSE feed never sent for a
// trade's leg -- upstream calls this a "virtual order tick" -- and feeds
// it through Add exactly as if the exchange had sent it, then drops its id
// from the shard's dedup index. If the virtual order rested on the book
// instead of matching, it stays there as an ordinary resting order.
func (s *Shard) backfill(sym *symbol, trade *domain.TradeTick, side domain.Side, uniqueID int64) {
	virtual := domain.NewOrder(uniqueID, trade.Symbol, side, domain.OrderTypeLimit, trade.ExecPrice1000x, trade.ExecQuantity, trade.ExchangeTime)
	s.Add(virtual)
	delete(sym.orders, uniqueID)
}

// ExchangeL2 cross-checks an exchange-published L2 snapshot against the
// validator's recorded depth digests, then forwards it to the reporter
// sink for observability; the booker never derives book state from it.
func (s *Shard) ExchangeL2(tick *domain.L2Tick) {
	if s.validator != nil {
		if !s.validator.CheckL2(tick) {
			s.failed[tick.Symbol] = true
		}
	}
	s.sink.ExchangeL2TickArrived(tick)
}

// SwitchToContinuousStage drains every symbol's call-auction holder in
// original arrival order, replaying each surviving order through the
// matching core with its exchange time bumped to the continuous-session
// open. It is idempotent: a second call is a no-op.
func (s *Shard) SwitchToContinuousStage() {
	if s.inContinuous {
		return
	}

	for _, sym := range s.symbols {
		for {
			order := sym.auction.Pop()
			if order == nil {
				break
			}
			order.ExchangeTime = domain.TimeContinuousOpen
			s.Add(order)
		}
	}

	s.inContinuous = true
}
