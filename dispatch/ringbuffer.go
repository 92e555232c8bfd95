// Package dispatch receives raw multicast payloads, decodes them, and
// routes the resulting envelopes to per-shard queues by symbol hash. Each
// multicast group gets its own receiver goroutine; each booker shard gets
// its own lock-free queue so the receivers never contend with each other
// or with the shard goroutines draining them.
package dispatch

import (
	"sync/atomic"
	_ "unsafe" // for go:linkname

	"lightning-exchange/wire"
)

//go:linkname semacquireSafe sync.runtime_Semacquire
func semacquireSafe(s *uint32)

//go:linkname semreleaseSafe sync.runtime_Semrelease
func semreleaseSafe(s *uint32, handoff bool, skipframes int)

// EnvelopeRingBuffer is a fixed-size SPSC queue of decoded envelopes
// between one dispatcher receiver and the booker shard it feeds. Every
// slot transition goes through a semaphore acquire/release pair rather
// than a CAS loop, so a shard that's fallen behind blocks its producer
// instead of spinning -- backpressure is therefore visible as receiver
// goroutines stalling, not as a growing unbounded queue.
type EnvelopeRingBuffer struct {
	buffer     []wire.Envelope
	mask       int64
	writeSeq   atomic.Int64
	readSeq    atomic.Int64
	emptySlots uint32
	fullSlots  uint32
}

// EnvelopeConsumer is a single shard's read side of an EnvelopeRingBuffer,
// holding a local batch cache to cut down on semaphore round-trips.
type EnvelopeConsumer struct {
	rb         *EnvelopeRingBuffer
	localCache [128]wire.Envelope
	cacheStart int
	cacheEnd   int
}

// NewEnvelopeRingBuffer creates a queue of size slots, which must be a
// power of two.
func NewEnvelopeRingBuffer(size int) *EnvelopeRingBuffer {
	if size&(size-1) != 0 {
		panic("EnvelopeRingBuffer size must be power of 2")
	}

	rb := &EnvelopeRingBuffer{
		buffer: make([]wire.Envelope, size),
		mask:   int64(size - 1),
	}
	for i := 0; i < size; i++ {
		semreleaseSafe(&rb.emptySlots, false, 0)
	}
	return rb
}

// NewConsumer creates this ring buffer's (single) consumer.
func (rb *EnvelopeRingBuffer) NewConsumer() *EnvelopeConsumer {
	return &EnvelopeConsumer{rb: rb}
}

// Publish blocks until a slot is free, then writes env into it. Safe for
// exactly one producer goroutine per ring buffer.
func (rb *EnvelopeRingBuffer) Publish(env wire.Envelope) {
	semacquireSafe(&rb.emptySlots)

	seq := rb.writeSeq.Add(1) - 1
	rb.buffer[seq&rb.mask] = env

	semreleaseSafe(&rb.fullSlots, false, 0)
}

// Consume blocks until at least one envelope is available and returns
// the next one in publish order.
func (cb *EnvelopeConsumer) Consume() wire.Envelope {
	if cb.cacheStart < cb.cacheEnd {
		env := cb.localCache[cb.cacheStart]
		cb.cacheStart++
		return env
	}

	cb.fillCache()

	env := cb.localCache[cb.cacheStart]
	cb.cacheStart++
	return env
}

// fillCache blocks for the first envelope, then opportunistically drains
// whatever else is already available (up to a 128-entry batch) without
// blocking further, amortizing the semaphore cost across the batch.
func (cb *EnvelopeConsumer) fillCache() {
	rb := cb.rb

	semacquireSafe(&rb.fullSlots)
	seq := rb.readSeq.Add(1) - 1
	cb.localCache[0] = rb.buffer[seq&rb.mask]
	semreleaseSafe(&rb.emptySlots, false, 0)

	acquired := 1

	maxBatch := len(cb.localCache)
	available := int(rb.writeSeq.Load() - rb.readSeq.Load())
	if available > maxBatch-1 {
		available = maxBatch - 1
	}

	for i := 0; i < available; i++ {
		semacquireSafe(&rb.fullSlots)

		seq := rb.readSeq.Add(1) - 1
		cb.localCache[acquired] = rb.buffer[seq&rb.mask]

		semreleaseSafe(&rb.emptySlots, false, 0)
		acquired++
	}

	cb.cacheStart = 0
	cb.cacheEnd = acquired
}
