package domain

// TradeTick is an exchange-published execution report. SZSE occasionally
// reuses this wire shape to announce a cancel: XOstSzseExeType carries
// OrderTypeCancel in that case and the decoder rewrites the record back
// into an OrderTick before the booker ever sees a TradeTick with that flag
// set (see wire.Decode). The field is carried for reporting; the booker
// does not read it.
type TradeTick struct {
	AskUniqueID      int64
	BidUniqueID      int64
	Symbol           string
	ExecPrice1000x   int64
	ExecQuantity     int64
	ExchangeTime     int64
	XOstSzseExeType  OrderType
}

// GeneratedL2Tick is one reconstructed post-trade snapshot, the booker's
// primary output. AskLevels ascends from the best ask, BidLevels descends
// from the best bid; both are always exactly length 5, zero-padded.
type GeneratedL2Tick struct {
	Symbol       string
	Price1000x   int64
	Quantity     int64
	AskUniqueID  int64
	BidUniqueID  int64
	ExchangeTime int64
	AskLevels    [5]PriceQty
	BidLevels    [5]PriceQty
	// Result is false once the MD validator has flagged this symbol as
	// disagreeing with the exchange-published L2 stream.
	Result bool
}

// L2Tick is the exchange-published L2 snapshot, ten levels per side plus
// per-symbol aggregates. It is consumed only by the MD validator as a
// cross-check against GeneratedL2Tick; the booker never derives state from
// it.
type L2Tick struct {
	Symbol             string
	ExchangeTime       int64
	AskLevels          [10]PriceQty
	BidLevels          [10]PriceQty
	NumTrades          int64
	TotalVolume        int64
	TotalTurnover1000x int64
	OpenPrice1000x     int64
	HighPrice1000x     int64
	LowPrice1000x      int64
	PreClosePrice1000x int64
}

// OrderRejection reports why the matching core declined to act on an
// order or cancel.
type OrderRejection struct {
	UniqueID int64
	Symbol   string
	Reason   string
}
