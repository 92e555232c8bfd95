package domain

// RangedTick is a 3-second windowed aggregation of order-flow statistics
// for one symbol, emitted by the ranged accumulator during continuous
// trading. Amounts are notional (price * quantity) scaled by 1000 like
// everything else in this package.
type RangedTick struct {
	Symbol       string
	ExchangeTime int64 // aligned window-close time
	StartTime    int64
	EndTime      int64

	ActiveBuyNumber  int64 // limit buy orders submitted in the window
	ActiveSellNumber int64

	ActiveTradedBuyNumber  int64 // fills where the buy side was the aggressor
	ActiveTradedSellNumber int64
	ActiveBuyQuantity      int64
	ActiveSellQuantity     int64
	ActiveBuyAmount1000x   int64
	ActiveSellAmount1000x  int64

	AggressiveBuyNumber  int64 // buy orders that crossed the spread on arrival
	AggressiveSellNumber int64

	NewAddedBid1Quantity int64 // qty added exactly at best bid/ask
	NewAddedAsk1Quantity int64

	NewCanceledBid1Quantity int64
	NewCanceledAsk1Quantity int64

	BigBidAmount1000x int64 // notional of fills >= 50,000,000 scaled units
	BigAskAmount1000x int64

	HighestPrice1000x int64
	LowestPrice1000x  int64

	// AskPrice1ValidDuration1000x/BidPrice1ValidDuration1000x: time in ms
	// from window start to the first moment the level-1 price moved past
	// its value at window start; 3010 (a 3-second window plus 10ms slack)
	// if it never moved. Seeded from the first buffered event of the
	// window, not a true window-start snapshot -- see ranged package docs.
	AskPrice1ValidDuration1000x int64
	BidPrice1ValidDuration1000x int64

	WeightedAskPrice [5]float64
	WeightedBidPrice [5]float64

	// XAskPrice1_1000x/XBidPrice1_1000x: top-of-book price at the moment
	// this partial tick was recorded, carried through unaggregated so the
	// accumulator can detect level-1 movement across the window.
	XAskPrice1_1000x int64
	XBidPrice1_1000x int64
}
