package dispatch

import (
	"sync"
	"testing"

	"lightning-exchange/domain"
	"lightning-exchange/wire"
)

func orderEnvelope(id int64, symbol string) wire.Envelope {
	return wire.Envelope{
		Kind:   wire.EnvelopeOrder,
		Symbol: symbol,
		Order:  domain.NewOrder(id, symbol, domain.SideBuy, domain.OrderTypeLimit, 10000, 100, 93000000),
	}
}

func TestRingBufferPreservesPublishOrder(t *testing.T) {
	rb := NewEnvelopeRingBuffer(16)
	consumer := rb.NewConsumer()

	const n = 500
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := int64(0); i < n; i++ {
			rb.Publish(orderEnvelope(i, "600000"))
		}
	}()

	for i := int64(0); i < n; i++ {
		env := consumer.Consume()
		if env.Order.UniqueID != i {
			t.Fatalf("expected envelope %d in order, got %d", i, env.Order.UniqueID)
		}
	}
	wg.Wait()
}

func TestRingBufferBlocksUntilPublished(t *testing.T) {
	rb := NewEnvelopeRingBuffer(4)
	consumer := rb.NewConsumer()

	done := make(chan wire.Envelope, 1)
	go func() {
		done <- consumer.Consume()
	}()

	rb.Publish(orderEnvelope(42, "000001"))

	env := <-done
	if env.Order.UniqueID != 42 {
		t.Fatalf("expected unique id 42, got %d", env.Order.UniqueID)
	}
}

func TestDispatcherRoutesSameSymbolToSameShard(t *testing.T) {
	d := NewChannelDispatcher(noopLogger(), 4, 16)

	first := d.ShardFor("600000")
	second := d.ShardFor("600000")
	if first != second {
		t.Error("expected the same symbol to always route to the same shard")
	}
}

func TestDispatcherSpreadsAcrossShards(t *testing.T) {
	d := NewChannelDispatcher(noopLogger(), 4, 16)

	seen := map[*Shard]bool{}
	for i := 0; i < 100; i++ {
		symbol := symbolFromIndex(i)
		seen[d.ShardFor(symbol)] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected symbols to spread across more than one shard, got %d distinct shards", len(seen))
	}
}

func symbolFromIndex(i int) string {
	digits := "000000"
	s := []byte(digits)
	for j := len(s) - 1; i > 0 && j >= 0; j-- {
		s[j] = byte('0' + i%10)
		i /= 10
	}
	return string(s)
}
