// Package ranged computes 3-second windowed order-flow analytics per
// symbol during continuous trading: order arrival counts, aggressiveness,
// traded volume/notional, level-1 churn, and a tanh-weighted measure of
// how far each depth level has drifted from the window's opening price.
// A window closes and emits a RangedTick once 3000ms have elapsed since
// its first buffered snapshot; the accumulator is otherwise just a
// per-symbol append buffer, so it carries no book state of its own and
// takes the current book as a parameter wherever it needs a snapshot.
package ranged

import (
	"math"

	"lightning-exchange/domain"
	"lightning-exchange/orderbook"
)

const windowMillis = 3000

// Accumulator buffers per-symbol RangedTick snapshots and flushes a
// window whenever enough time has passed since the oldest buffered one.
type Accumulator struct {
	symbols map[string]*symbolState
}

type symbolState struct {
	buffered []*domain.RangedTick
	previous *domain.GeneratedL2Tick
}

// New creates an empty accumulator.
func New() *Accumulator {
	return &Accumulator{symbols: make(map[string]*symbolState)}
}

func (a *Accumulator) stateFor(symbol string) *symbolState {
	st, ok := a.symbols[symbol]
	if !ok {
		st = &symbolState{}
		a.symbols[symbol] = st
	}
	return st
}

// inWindow reports whether exchange time t falls in one of the two
// continuous-trading ranges the accumulator tracks -- morning session up
// to the lunch recess, and afternoon session up to the close.
func inWindow(t int64) bool {
	return (t >= domain.TimeContinuousOpen && t <= domain.TimeMorningRecessBegin) ||
		(t >= domain.TimeAfternoonRecessEnd && t <= domain.TimeContinuousClose)
}

// OnOrder records an incoming limit or cancel order tick. book must
// reflect the book's state after order has already been applied (the
// booker calls this right after matching/resting the order), since the
// snapshot needs the post-arrival best bid/ask. Returns a closed window's
// RangedTick if this call happened to cross the 3-second boundary, or nil.
func (a *Accumulator) OnOrder(order *domain.Order, book *orderbook.Book) *domain.RangedTick {
	if !inWindow(order.ExchangeTime) {
		return nil
	}
	closed := a.refresh(order.Symbol, book, order.ExchangeTime)

	rt := newTick(order.Symbol, order.ExchangeTime)

	switch order.OrderType {
	case domain.OrderTypeLimit:
		switch order.Side {
		case domain.SideBuy:
			rt.ActiveBuyNumber = 1
			if order.Price1000x > book.BestBid() {
				rt.AggressiveBuyNumber = 1
			}
			if order.Price1000x == book.BestBid() {
				rt.NewAddedBid1Quantity = order.Quantity
			}
		case domain.SideSell:
			rt.ActiveSellNumber = 1
			if order.Price1000x < book.BestAsk() {
				rt.AggressiveSellNumber = 1
			}
			if order.Price1000x == book.BestAsk() {
				rt.NewAddedAsk1Quantity = order.Quantity
			}
		}
	case domain.OrderTypeCancel:
		switch order.Side {
		case domain.SideBuy:
			rt.NewCanceledBid1Quantity = order.Quantity
		case domain.SideSell:
			rt.NewCanceledAsk1Quantity = order.Quantity
		}
	}

	rt.XAskPrice1_1000x = book.BestAsk()
	rt.XBidPrice1_1000x = book.BestBid()

	a.append(order.Symbol, rt)
	return closed
}

// OnFill records one fill leg. side is the aggressing order's side --
// the side that crossed the spread to cause this fill, which is what
// determines whether it counts as active-buy or active-sell flow.
func (a *Accumulator) OnFill(symbol string, side domain.Side, qty, price, exchangeTime int64, book *orderbook.Book) *domain.RangedTick {
	if !inWindow(exchangeTime) {
		return nil
	}
	closed := a.refresh(symbol, book, exchangeTime)

	rt := newTick(symbol, exchangeTime)
	rt.HighestPrice1000x = price
	rt.LowestPrice1000x = price

	notional := qty * price
	const bigOrderThreshold = 50_000_000

	switch side {
	case domain.SideBuy:
		rt.ActiveTradedBuyNumber = 1
		rt.ActiveBuyQuantity = qty
		rt.ActiveBuyAmount1000x = notional
		if notional >= bigOrderThreshold {
			// A large buy eats into the ask side's resting liquidity.
			rt.BigAskAmount1000x = notional
		}
	case domain.SideSell:
		rt.ActiveTradedSellNumber = 1
		rt.ActiveSellQuantity = qty
		rt.ActiveSellAmount1000x = notional
		if notional >= bigOrderThreshold {
			rt.BigBidAmount1000x = notional
		}
	}

	rt.XAskPrice1_1000x = book.BestAsk()
	rt.XBidPrice1_1000x = book.BestBid()

	a.append(symbol, rt)
	return closed
}

func newTick(symbol string, exchangeTime int64) *domain.RangedTick {
	return &domain.RangedTick{
		Symbol:            symbol,
		ExchangeTime:      exchangeTime,
		HighestPrice1000x: math.MinInt64,
		LowestPrice1000x:  math.MaxInt64,
	}
}

func (a *Accumulator) append(symbol string, rt *domain.RangedTick) {
	st := a.stateFor(symbol)
	st.buffered = append(st.buffered, rt)
}

// refresh closes the oldest open window for symbol once 3 seconds have
// elapsed since its first snapshot, aggregating every buffered snapshot
// still within the trailing 3-second range into one RangedTick.
func (a *Accumulator) refresh(symbol string, book *orderbook.Book, now int64) *domain.RangedTick {
	st := a.stateFor(symbol)
	if len(st.buffered) == 0 {
		return nil
	}
	first := st.buffered[0]
	if now-first.ExchangeTime < windowMillis {
		return nil
	}

	out := &domain.RangedTick{
		Symbol:                      symbol,
		ExchangeTime:                alignTime(now),
		StartTime:                   math.MaxInt64,
		EndTime:                     math.MinInt64,
		HighestPrice1000x:           math.MinInt64,
		LowestPrice1000x:            math.MaxInt64,
		AskPrice1ValidDuration1000x: windowMillis + 10,
		BidPrice1ValidDuration1000x: windowMillis + 10,
	}

	var latestLevels domain.GeneratedL2Tick
	latestLevels.Symbol = symbol
	orderbook.Depth5(book.Asks, &latestLevels.AskLevels)
	orderbook.Depth5(book.Bids, &latestLevels.BidLevels)

	if st.previous != nil {
		generateWeightedPrice(&latestLevels, st.previous, out)
	}
	st.previous = &latestLevels

	initAsk, initBid := first.XAskPrice1_1000x, first.XBidPrice1_1000x

	for _, rt := range st.buffered {
		if rt.ExchangeTime < now-windowMillis {
			continue
		}

		out.StartTime = min64(out.StartTime, rt.ExchangeTime)
		out.EndTime = max64(out.EndTime, rt.ExchangeTime)

		out.ActiveBuyNumber += rt.ActiveBuyNumber
		out.ActiveSellNumber += rt.ActiveSellNumber
		out.ActiveTradedBuyNumber += rt.ActiveTradedBuyNumber
		out.ActiveTradedSellNumber += rt.ActiveTradedSellNumber
		out.ActiveBuyQuantity += rt.ActiveBuyQuantity
		out.ActiveSellQuantity += rt.ActiveSellQuantity
		out.ActiveBuyAmount1000x += rt.ActiveBuyAmount1000x
		out.ActiveSellAmount1000x += rt.ActiveSellAmount1000x
		out.AggressiveBuyNumber += rt.AggressiveBuyNumber
		out.AggressiveSellNumber += rt.AggressiveSellNumber
		out.NewAddedBid1Quantity += rt.NewAddedBid1Quantity
		out.NewAddedAsk1Quantity += rt.NewAddedAsk1Quantity
		out.NewCanceledBid1Quantity += rt.NewCanceledBid1Quantity
		out.NewCanceledAsk1Quantity += rt.NewCanceledAsk1Quantity
		out.BigBidAmount1000x += rt.BigBidAmount1000x
		out.BigAskAmount1000x += rt.BigAskAmount1000x

		out.HighestPrice1000x = max64(out.HighestPrice1000x, rt.HighestPrice1000x)
		out.LowestPrice1000x = min64(out.LowestPrice1000x, rt.LowestPrice1000x)

		if rt.XAskPrice1_1000x > initAsk && out.AskPrice1ValidDuration1000x == windowMillis+10 {
			out.AskPrice1ValidDuration1000x = rt.ExchangeTime - out.StartTime
		}
		if rt.XBidPrice1_1000x < initBid && out.BidPrice1ValidDuration1000x == windowMillis+10 {
			out.BidPrice1ValidDuration1000x = rt.ExchangeTime - out.StartTime
		}
	}

	st.buffered = st.buffered[:0]
	return out
}

// generateWeightedPrice scores how far each of latest's 5 depth levels
// has drifted from previous's level-1 price, compressed through tanh so
// a level many multiples away saturates near 0/1 instead of diverging.
func generateWeightedPrice(latest, previous *domain.GeneratedL2Tick, out *domain.RangedTick) {
	prevAsk1 := previous.AskLevels[0].Price1000x
	prevBid1 := previous.BidLevels[0].Price1000x

	for i := 0; i < 5; i++ {
		if prevAsk1 != 0 {
			ratio := float64(latest.AskLevels[i].Price1000x)/float64(prevAsk1) - 1
			out.WeightedAskPrice[i] = 1 - math.Tanh(ratio*100)
		}
		if prevBid1 != 0 && latest.BidLevels[i].Price1000x != 0 {
			ratio := float64(prevBid1)/float64(latest.BidLevels[i].Price1000x) - 1
			out.WeightedBidPrice[i] = 1 - math.Tanh(ratio*100)
		}
	}
}

// alignTime floors an exchange time down to the nearest 3-second
// boundary within its minute, e.g. 093000500 -> 093000000, 093005999 ->
// 093003000. Windows are reported on this grid regardless of which
// millisecond within it actually closed the window.
func alignTime(t int64) int64 {
	points := [...]int64{0, 3, 6, 9, 12, 15, 18, 21, 24, 27, 30, 33, 36, 39, 42, 45, 48, 51, 54, 57}

	seconds := (t / 1000) % 100
	base := t/1000 - seconds

	for i := len(points) - 1; i >= 0; i-- {
		if points[i] <= seconds {
			base += points[i]
			break
		}
	}
	return base * 1000
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
