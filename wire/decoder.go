package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"lightning-exchange/domain"
)

// Exchange identifies which dialect a payload should be decoded as.
type Exchange int8

const (
	SSE Exchange = iota
	SZSE
)

// SSE order-tick type bytes.
const (
	sseTickLimit  = 'A'
	sseTickCancel = 'D'
	sseTickFill   = 'T'
)

// SSE side bytes.
const (
	sseSideBuy  = 'B'
	sseSideSell = 'S'
)

// SZSE order-type bytes.
const (
	szseTypeLimit     = '2'
	szseTypeMarket    = '1'
	szseTypeBestPrice = 'U'
	szseTypeCancel    = '4'
	szseTypeFill      = 'F'
)

// SZSE side bytes.
const (
	szseSideBuy  = '1'
	szseSideSell = '2'
)

// EnvelopeKind discriminates the payload an Envelope carries.
type EnvelopeKind int8

const (
	EnvelopeOrder EnvelopeKind = iota
	EnvelopeTrade
	EnvelopeL2
)

// Envelope is the decoder's single output type: exactly one of Order,
// Trade, or L2 is populated depending on Kind. Using one sum type instead
// of three separate channels keeps ring-buffer and dispatch plumbing
// generic over "whatever came off the wire".
type Envelope struct {
	Kind   EnvelopeKind
	Symbol string
	Order  *domain.Order
	Trade  *domain.TradeTick
	L2     *domain.L2Tick
}

// Decode parses one raw multicast payload according to exchange's wire
// dialect, dispatching on payload length the way the original decoder
// dispatches on sizeof(T) -- each record type on a given exchange has a
// distinct, fixed size, so length alone identifies the shape.
func Decode(exchange Exchange, payload []byte) (Envelope, error) {
	switch exchange {
	case SSE:
		return decodeSSE(payload)
	case SZSE:
		return decodeSZSE(payload)
	default:
		return Envelope{}, fmt.Errorf("wire: unknown exchange %d", exchange)
	}
}

func decodeSSE(payload []byte) (Envelope, error) {
	switch len(payload) {
	case binary.Size(SSEHpfTick{}):
		var rec SSEHpfTick
		if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, &rec); err != nil {
			return Envelope{}, err
		}
		return sseTickToEnvelope(rec)
	case binary.Size(SSEHpfL2Snap{}):
		var rec SSEHpfL2Snap
		if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, &rec); err != nil {
			return Envelope{}, err
		}
		return sseSnapToEnvelope(rec)
	default:
		return Envelope{}, fmt.Errorf("wire: unrecognized SSE payload length %d", len(payload))
	}
}

func sseTickToEnvelope(rec SSEHpfTick) (Envelope, error) {
	symbol, err := validSymbol(string(trimNul(rec.SymbolID[:])))
	if err != nil {
		return Envelope{}, err
	}

	exchangeDate := int64(rec.DataYear)*10000 + int64(rec.DataMonth)*100 + int64(rec.DataDay)
	exchangeTime := int64(rec.TickTime) * 10
	_ = exchangeDate

	switch rec.TickType {
	case sseTickFill:
		// SSE folds a fill into an order-shaped record carrying both
		// resting order ids; upgrade it straight to a TradeTick. The
		// higher of the two order numbers becomes the ask id, the other
		// the bid id -- the same magnitude rule used for the SZSE
		// cancel-as-trade rewrite below, not a buy/sell-keyed mapping.
		askID, bidID := rec.SellOrderNo, rec.BuyOrderNo
		if rec.BuyOrderNo > rec.SellOrderNo {
			askID, bidID = rec.BuyOrderNo, rec.SellOrderNo
		}
		trade := &domain.TradeTick{
			AskUniqueID:    askID,
			BidUniqueID:    bidID,
			Symbol:         symbol,
			ExecPrice1000x: toPrice1000xFromSSE(rec.OrderPrice),
			ExecQuantity:   toQuantityFromSSE(rec.Qty),
			ExchangeTime:   exchangeTime,
		}
		return Envelope{Kind: EnvelopeTrade, Symbol: symbol, Trade: trade}, nil
	case sseTickCancel, sseTickLimit:
		side, err := sseSide(rec.SideFlag)
		if err != nil {
			return Envelope{}, err
		}
		orderType := domain.OrderTypeLimit
		if rec.TickType == sseTickCancel {
			orderType = domain.OrderTypeCancel
		}
		uniqueID := rec.BuyOrderNo
		if side == domain.SideSell {
			uniqueID = rec.SellOrderNo
		}
		order := domain.NewOrder(uniqueID, symbol, side, orderType, toPrice1000xFromSSE(rec.OrderPrice), toQuantityFromSSE(rec.Qty), exchangeTime)
		return Envelope{Kind: EnvelopeOrder, Symbol: symbol, Order: order}, nil
	default:
		return Envelope{}, fmt.Errorf("wire: unrecognized SSE tick type %q", rec.TickType)
	}
}

func sseSnapToEnvelope(rec SSEHpfL2Snap) (Envelope, error) {
	symbol, err := validSymbol(string(trimNul(rec.SymbolID[:])))
	if err != nil {
		return Envelope{}, err
	}
	l2 := &domain.L2Tick{
		Symbol:             symbol,
		ExchangeTime:       int64(rec.TickTime) * 10,
		NumTrades:          rec.NumTrades,
		TotalVolume:        toQuantityFromSSE(uint32(rec.Volume)),
		TotalTurnover1000x: int64(rec.Turnover),
		OpenPrice1000x:     toPrice1000xFromSSE(rec.OpenPrice),
		HighPrice1000x:     toPrice1000xFromSSE(rec.HighPrice),
		LowPrice1000x:      toPrice1000xFromSSE(rec.LowPrice),
		PreClosePrice1000x: toPrice1000xFromSSE(rec.PreClose),
	}
	for i := 0; i < 10; i++ {
		l2.AskLevels[i] = domain.PriceQty{Price1000x: toPrice1000xFromSSE(rec.AskPrice[i]), Quantity: toQuantityFromSSE(uint32(rec.AskQty[i]))}
		l2.BidLevels[i] = domain.PriceQty{Price1000x: toPrice1000xFromSSE(rec.BidPrice[i]), Quantity: toQuantityFromSSE(uint32(rec.BidQty[i]))}
	}
	return Envelope{Kind: EnvelopeL2, Symbol: symbol, L2: l2}, nil
}

func decodeSZSE(payload []byte) (Envelope, error) {
	switch len(payload) {
	case binary.Size(SZSEHpfOrderTick{}):
		var rec SZSEHpfOrderTick
		if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, &rec); err != nil {
			return Envelope{}, err
		}
		return szseOrderToEnvelope(rec)
	case binary.Size(SZSEHpfTradeTick{}):
		var rec SZSEHpfTradeTick
		if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, &rec); err != nil {
			return Envelope{}, err
		}
		return szseTradeToEnvelope(rec)
	case binary.Size(SZSEHpfL2Snap{}):
		var rec SZSEHpfL2Snap
		if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, &rec); err != nil {
			return Envelope{}, err
		}
		return szseSnapToEnvelope(rec)
	default:
		return Envelope{}, fmt.Errorf("wire: unrecognized SZSE payload length %d", len(payload))
	}
}

func szseOrderToEnvelope(rec SZSEHpfOrderTick) (Envelope, error) {
	symbol, err := validSymbol(string(trimNul(rec.Header.Symbol[:])))
	if err != nil {
		return Envelope{}, err
	}
	side, err := szseSide(rec.Side)
	if err != nil {
		return Envelope{}, err
	}
	orderType, err := szseOrderType(rec.OrderType)
	if err != nil {
		return Envelope{}, err
	}
	order := domain.NewOrder(
		rec.Header.SequenceNum,
		symbol,
		side,
		orderType,
		toPrice1000xFromSZSE(rec.Px),
		toQuantityFromSZSE(uint32(rec.Qty)),
		toTimeFromSZSE(rec.Header.QuoteUpdateTime),
	)
	return Envelope{Kind: EnvelopeOrder, Symbol: symbol, Order: order}, nil
}

func szseTradeToEnvelope(rec SZSEHpfTradeTick) (Envelope, error) {
	symbol, err := validSymbol(string(trimNul(rec.Header.Symbol[:])))
	if err != nil {
		return Envelope{}, err
	}

	exeType, err := szseOrderType(rec.ExeType)
	if err != nil {
		return Envelope{}, err
	}

	if exeType == domain.OrderTypeCancel {
		// SZSE reuses the trade-tick shape to announce a cancel. Rewrite
		// it back into an order tick the way the booker expects: the
		// cancelling side is whichever of the two app-seq ids is larger,
		// and its side flips based on which one that is.
		uniqueID := rec.BidAppSeqNum
		side := domain.SideBuy
		if rec.AskAppSeqNum > rec.BidAppSeqNum {
			uniqueID = rec.AskAppSeqNum
			side = domain.SideSell
		}
		order := domain.NewOrder(
			uniqueID,
			symbol,
			side,
			domain.OrderTypeCancel,
			toPrice1000xFromSZSE(rec.ExePx),
			toQuantityFromSZSE(uint32(rec.ExeQty)),
			toTimeFromSZSE(rec.Header.QuoteUpdateTime),
		)
		return Envelope{Kind: EnvelopeOrder, Symbol: symbol, Order: order}, nil
	}

	trade := &domain.TradeTick{
		AskUniqueID:     rec.AskAppSeqNum,
		BidUniqueID:     rec.BidAppSeqNum,
		Symbol:          symbol,
		ExecPrice1000x:  toPrice1000xFromSZSE(rec.ExePx),
		ExecQuantity:    toQuantityFromSZSE(uint32(rec.ExeQty)),
		ExchangeTime:    toTimeFromSZSE(rec.Header.QuoteUpdateTime),
		XOstSzseExeType: exeType,
	}
	return Envelope{Kind: EnvelopeTrade, Symbol: symbol, Trade: trade}, nil
}

func szseSnapToEnvelope(rec SZSEHpfL2Snap) (Envelope, error) {
	symbol, err := validSymbol(string(trimNul(rec.Header.Symbol[:])))
	if err != nil {
		return Envelope{}, err
	}
	l2 := &domain.L2Tick{
		Symbol:             symbol,
		ExchangeTime:       toTimeFromSZSE(rec.Header.QuoteUpdateTime),
		NumTrades:          rec.NumTrades,
		TotalVolume:        toQuantityFromSZSE(uint32(rec.Volume)),
		TotalTurnover1000x: int64(rec.Turnover),
		OpenPrice1000x:     toPrice1000xFromSZSE(rec.OpenPrice),
		HighPrice1000x:     toPrice1000xFromSZSE(rec.HighPrice),
		LowPrice1000x:      toPrice1000xFromSZSE(rec.LowPrice),
		PreClosePrice1000x: toPrice1000xFromSZSE(rec.PreClose),
	}
	for i := 0; i < 10; i++ {
		l2.AskLevels[i] = domain.PriceQty{Price1000x: toPrice1000xFromSZSE(rec.AskPrice[i]), Quantity: toQuantityFromSZSE(uint32(rec.AskQty[i]))}
		l2.BidLevels[i] = domain.PriceQty{Price1000x: toPrice1000xFromSZSE(rec.BidPrice[i]), Quantity: toQuantityFromSZSE(uint32(rec.BidQty[i]))}
	}
	return Envelope{Kind: EnvelopeL2, Symbol: symbol, L2: l2}, nil
}

// toPrice1000xFromSSE: SSE's order_price field already carries 3 implied
// decimal digits, same scale this package uses internally.
func toPrice1000xFromSSE(price uint32) int64 { return int64(price) }

// toPrice1000xFromSZSE: SZSE carries 4 implied decimal digits; divide by
// 10 to rescale to price_1000x.
func toPrice1000xFromSZSE(price uint32) int64 { return int64(price) / 10 }

func toQuantityFromSSE(qty uint32) int64  { return int64(qty) / 1000 }
func toQuantityFromSZSE(qty uint32) int64 { return int64(qty) / 100 }

// toTimeFromSZSE extracts the HHMMSSmmm-scale time-of-day from SZSE's
// combined date+time field, e.g. 20210701092500000 -> 92500000.
func toTimeFromSZSE(quoteUpdateTime uint64) int64 {
	return int64(quoteUpdateTime % 1000000000)
}

func sseSide(b byte) (domain.Side, error) {
	switch b {
	case sseSideBuy:
		return domain.SideBuy, nil
	case sseSideSell:
		return domain.SideSell, nil
	default:
		return 0, fmt.Errorf("wire: unrecognized SSE side byte %q", b)
	}
}

func szseSide(b byte) (domain.Side, error) {
	switch b {
	case szseSideBuy:
		return domain.SideBuy, nil
	case szseSideSell:
		return domain.SideSell, nil
	default:
		return 0, fmt.Errorf("wire: unrecognized SZSE side byte %q", b)
	}
}

func szseOrderType(b byte) (domain.OrderType, error) {
	switch b {
	case szseTypeLimit:
		return domain.OrderTypeLimit, nil
	case szseTypeMarket:
		return domain.OrderTypeMarket, nil
	case szseTypeBestPrice:
		return domain.OrderTypeBestPrice, nil
	case szseTypeCancel:
		return domain.OrderTypeCancel, nil
	case szseTypeFill:
		return domain.OrderTypeFill, nil
	default:
		return 0, fmt.Errorf("wire: unrecognized SZSE order-type byte %q", b)
	}
}

func trimNul(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// validSymbol parses a textual symbol id and enforces the exchange's
// prefix rule: tradable A-share symbols only ever start with 0, 3, or 6.
func validSymbol(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", fmt.Errorf("wire: symbol %q is not numeric: %w", raw, err)
	}
	prefix := n / 100000
	if prefix != 0 && prefix != 3 && prefix != 6 {
		return "", fmt.Errorf("wire: symbol %q has invalid prefix", raw)
	}
	return raw, nil
}
