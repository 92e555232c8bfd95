package dispatch

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// tagGenerator hands out short "R<n>" correlation tags for receiver
// goroutines to stamp onto their log lines, so a burst of warnings from
// one multicast group is visibly distinguishable from another without
// printing the whole address every time. Built the same way the original
// trade-id generator was: a sync.Pool of strings.Builder to keep the hot
// path allocation-free, backed by an atomic counter instead of a mutex.
type tagGenerator struct {
	counter atomic.Uint64
	pool    sync.Pool
}

func newTagGenerator() *tagGenerator {
	return &tagGenerator{
		pool: sync.Pool{New: func() any { return &strings.Builder{} }},
	}
}

func (g *tagGenerator) next() string {
	n := g.counter.Add(1)

	b := g.pool.Get().(*strings.Builder)
	b.Reset()
	b.WriteByte('R')
	b.WriteString(strconv.FormatUint(n, 10))
	tag := b.String()
	g.pool.Put(b)

	return tag
}
