// Package validator cross-checks the booker's generated ticks against the
// exchange's own published trade/L2 stream. Keeping full ticks around for
// comparison would be expensive and isn't necessary: a hash of the
// handful of fields that matter -- (price, quantity) for a trade, the
// top three depth levels on each side for an L2 snapshot -- is enough to
// catch the cases that matter (dropped fills, price or quantity drift, a
// feed gap), so each symbol gets two small fixed-size rings of digests
// instead of an ever-growing tick history.
package validator

import (
	"github.com/cespare/xxhash/v2"

	"lightning-exchange/domain"
)

const bufferSize = 1024

// Validator buffers one trade digest and one L2 digest per generated
// tick, per symbol, and answers whether an exchange-published tick
// matches something the booker already produced.
type Validator struct {
	buffers map[string]*symbolBuffers
}

type symbolBuffers struct {
	trade *ring // digests of (price, quantity)
	l2    *ring // digests of the top 3 ask/bid depth levels
}

// New creates an empty validator.
func New() *Validator {
	return &Validator{buffers: make(map[string]*symbolBuffers)}
}

// RecordGenerated pushes both digests of a freshly generated L2 tick
// into its symbol's buffers: the trade digest (price, quantity) and the
// L2 digest (its own top-3-level depth snapshot), since a GeneratedL2Tick
// carries both a trade and a depth snapshot at once.
func (v *Validator) RecordGenerated(tick *domain.GeneratedL2Tick) {
	buf := v.bufferFor(tick.Symbol)
	buf.trade.push(tradeDigest(tick.Price1000x, tick.Quantity))
	buf.l2.push(l2Digest(tick.AskLevels[:3], tick.BidLevels[:3]))
}

// CheckTrade reports whether an exchange-published trade tick matches a
// trade digest already recorded for its symbol. A symbol with no
// recorded ticks yet always fails the check, same as the digest not
// being found.
func (v *Validator) CheckTrade(trade *domain.TradeTick) bool {
	buf, ok := v.buffers[trade.Symbol]
	if !ok {
		return false
	}
	return buf.trade.contains(tradeDigest(trade.ExecPrice1000x, trade.ExecQuantity))
}

// CheckL2 reports whether an exchange-published L2 snapshot's top 3
// levels on each side match an L2 digest already recorded for its
// symbol.
func (v *Validator) CheckL2(l2 *domain.L2Tick) bool {
	buf, ok := v.buffers[l2.Symbol]
	if !ok {
		return false
	}
	return buf.l2.contains(l2Digest(l2.AskLevels[:3], l2.BidLevels[:3]))
}

func (v *Validator) bufferFor(symbol string) *symbolBuffers {
	buf, ok := v.buffers[symbol]
	if !ok {
		buf = &symbolBuffers{trade: newRing(bufferSize), l2: newRing(bufferSize)}
		v.buffers[symbol] = buf
	}
	return buf
}

func tradeDigest(price1000x, quantity int64) uint64 {
	var b [16]byte
	putInt64(b[0:8], price1000x)
	putInt64(b[8:16], quantity)
	return xxhash.Sum64(b[:])
}

// l2Digest hashes (ask1-price, ask1-qty, ask2-price, ask2-qty, ...,
// bid3-price, bid3-qty) -- the tuple the spec defines for the L2 hash
// buffer -- over whichever 3-level slices the caller passes (both the
// generated and exchange-published shapes carry at least 3 levels).
func l2Digest(asks, bids []domain.PriceQty) uint64 {
	var b [96]byte
	off := 0
	for _, lvl := range asks {
		putInt64(b[off:off+8], lvl.Price1000x)
		putInt64(b[off+8:off+16], lvl.Quantity)
		off += 16
	}
	for _, lvl := range bids {
		putInt64(b[off:off+8], lvl.Price1000x)
		putInt64(b[off+8:off+16], lvl.Quantity)
		off += 16
	}
	return xxhash.Sum64(b[:off])
}

func putInt64(b []byte, v int64) {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
}

// ring is a fixed-size circular buffer of digests, searched newest-first
// since a match is almost always recent.
type ring struct {
	data []uint64
	next int
	full bool
}

func newRing(size int) *ring {
	return &ring{data: make([]uint64, size)}
}

func (r *ring) push(h uint64) {
	r.data[r.next] = h
	r.next++
	if r.next == len(r.data) {
		r.next = 0
		r.full = true
	}
}

func (r *ring) contains(h uint64) bool {
	n := r.next
	if r.full {
		n = len(r.data)
	}
	for i := 0; i < n; i++ {
		idx := r.next - 1 - i
		if idx < 0 {
			idx += len(r.data)
		}
		if r.data[idx] == h {
			return true
		}
	}
	return false
}
