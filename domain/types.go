// Package domain defines the canonical tick types the booker operates on:
// OrderTick, TradeTick, GeneratedL2Tick, the exchange-published L2Tick used
// only for validation, and RangedTick windowed analytics. Prices are carried
// as integers scaled by 1000 ("price_1000x"); quantities are plain integers.
package domain

// Side is the side of an order or a matched leg.
type Side int8

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	if s == SideBuy {
		return "buy"
	}
	return "sell"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType is the canonical order type after wire decoding. An SSE fill
// arrives as an order-shaped packet that the decoder upgrades to a
// TradeTick; on SZSE, Fill marks a trade tick's XOstSzseExeType.
type OrderType int8

const (
	OrderTypeLimit OrderType = iota
	OrderTypeMarket
	OrderTypeBestPrice
	OrderTypeCancel
	OrderTypeFill
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeLimit:
		return "limit"
	case OrderTypeMarket:
		return "market"
	case OrderTypeBestPrice:
		return "best_price"
	case OrderTypeCancel:
		return "cancel"
	case OrderTypeFill:
		return "fill"
	default:
		return "unknown"
	}
}

// PriceQty is one depth level: a price and the aggregate open quantity
// resting at that price.
type PriceQty struct {
	Price1000x int64
	Quantity   int64
}

// Exchange-time boundaries, in HHMMSSmmm packed integer form. These are
// the only clock the booker ever consults; there is no wall-clock
// involvement in state transitions.
const (
	TimeCallAuctionCutover  int64 = 92500000  // pre-open -> call auction matching
	TimeContinuousOpen      int64 = 93000000  // call auction -> continuous trading
	TimeMorningRecessBegin  int64 = 113000000 // continuous trading midday recess (advanced calc window)
	TimeAfternoonRecessEnd  int64 = 130000000
	TimeContinuousClose     int64 = 150000000
	TimeClosingAuctionBegin int64 = 145700000
	TimeClosingAuctionEnd   int64 = 151000000
)
