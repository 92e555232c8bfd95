// Package wire decodes the raw multicast payloads published by the
// Shanghai (SSE) and Shenzhen (SZSE) exchanges into the domain package's
// tick types. Both exchanges publish fixed-width, 1-byte-packed,
// little-endian binary records; the layouts below mirror the wire exactly
// so they can be read with a single encoding/binary.Read rather than a
// hand-rolled field-by-field parser.
package wire

// SSEHpfTick is the SSE order/fill record. SSE never splits order and
// fill into separate wire shapes the way SZSE does -- m_tick_type decides
// which one a given record is, and a fill (m_tick_type == 'T') carries
// both resting order ids so it can be upgraded directly into a TradeTick.
type SSEHpfTick struct {
	SeqNum       uint32
	MsgType      uint8
	ExchangeID   uint8
	DataYear     uint16
	DataMonth    uint8
	DataDay      uint8
	SendTime     uint32
	ChannelID    uint16
	SymbolID     [9]byte
	SecuType     uint8
	SubSecuType  uint8
	TickTime     uint32
	TickType     byte
	BuyOrderNo   int64
	SellOrderNo  int64
	OrderPrice   uint32
	Qty          uint32
	TradeMoney   uint64
	SideFlag     byte
	InstrumentStatus uint8
}

// SSEHpfL2Snap is the SSE exchange-published L2 snapshot, used only to
// cross-check generated ticks; the booker never consumes it as input.
type SSEHpfL2Snap struct {
	SeqNum      uint32
	MsgType     uint8
	ExchangeID  uint8
	DataYear    uint16
	DataMonth   uint8
	DataDay     uint8
	SendTime    uint32
	ChannelID   uint16
	SymbolID    [9]byte
	SecuType    uint8
	SubSecuType uint8
	TickTime    uint32
	AskPrice    [10]uint32
	AskQty      [10]uint64
	BidPrice    [10]uint32
	BidQty      [10]uint64
	NumTrades   int64
	Volume      uint64
	Turnover    uint64
	OpenPrice   uint32
	HighPrice   uint32
	LowPrice    uint32
	PreClose    uint32
}

// SZSEHpfPackageHead is the common header every SZSE HPF record begins
// with.
type SZSEHpfPackageHead struct {
	Sequence        uint32
	Tick1           uint16
	Tick2           uint16
	MessageType     uint8
	SecurityType    uint8
	SubSecurityType uint8
	Symbol          [9]byte
	ExchangeID      uint8
	QuoteUpdateTime uint64
	ChannelNum      uint16
	SequenceNum     int64
	MdStreamID      int32
}

// SZSEHpfOrderTick is a resting-order add or a cancel (m_order_type ==
// '4'); SZSE never folds a fill into this shape, unlike SSE.
type SZSEHpfOrderTick struct {
	Header    SZSEHpfPackageHead
	Px        uint32
	Qty       uint64
	Side      byte
	OrderType byte
	Reserved  [7]byte
}

// SZSEHpfTradeTick is an execution report. When ExeType carries the
// cancel order-type byte rather than a fill byte, SZSE is using this
// shape to announce a cancel instead -- the decoder rewrites those back
// into an SZSEHpfOrderTick-equivalent domain.OrderTick before the booker
// ever sees them.
type SZSEHpfTradeTick struct {
	Header      SZSEHpfPackageHead
	BidAppSeqNum int64
	AskAppSeqNum int64
	ExePx       uint32
	ExeQty      uint64
	ExeType     byte
}

// SZSEHpfL2Snap is the SZSE exchange-published L2 snapshot, used only to
// cross-check generated ticks.
type SZSEHpfL2Snap struct {
	Header    SZSEHpfPackageHead
	AskPrice  [10]uint32
	AskQty    [10]uint64
	BidPrice  [10]uint32
	BidQty    [10]uint64
	NumTrades int64
	Volume    uint64
	Turnover  uint64
	OpenPrice uint32
	HighPrice uint32
	LowPrice  uint32
	PreClose  uint32
}
