package dispatch

import (
	"context"

	"lightning-exchange/booker"
	"lightning-exchange/wire"
)

// RunShard drains shard's consumer and feeds every envelope it produces
// into bk: order ticks go to Add, trade ticks to Trade, and exchange L2
// snapshots to ExchangeL2. Callers spawn one of these per entry in
// ChannelDispatcher.Shards, each paired with its own booker.Shard --
// the one-booker-goroutine-per-dispatcher-shard wiring §2/§4.2 describe.
//
// RunShard returns once ctx is canceled. Consumer.Consume blocks until an
// envelope is available, so -- like the receiver loop's own running-flag
// check between packets -- cancellation takes effect the next time an
// envelope is delivered, not instantly.
func RunShard(ctx context.Context, shard *Shard, bk *booker.Shard) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		env := shard.Consumer.Consume()
		switch env.Kind {
		case wire.EnvelopeOrder:
			bk.Add(env.Order)
		case wire.EnvelopeTrade:
			bk.Trade(env.Trade)
		case wire.EnvelopeL2:
			bk.ExchangeL2(env.L2)
		}
	}
}
