package main

import (
	"context"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"lightning-exchange/booker"
	"lightning-exchange/config"
	"lightning-exchange/dispatch"
	"lightning-exchange/orderbook"
	"lightning-exchange/reporter"
	"lightning-exchange/validator"
	"lightning-exchange/wire"
)

// main wires the module's pieces together end to end: a config, a
// structured logger, a metrics-then-log reporter chain, a
// ChannelDispatcher joining one multicast group per configured address,
// and one booker.Shard per dispatcher shard draining it -- the full
// raw-UDP-to-matching-core path. Ctrl-C (or SIGTERM) cancels the shared
// context, which both the dispatcher's receivers and the booker-shard
// consumer goroutines observe between units of work.
func main() {
	v := viper.New()
	v.Set("multicast_addresses", []string{"239.255.0.1:12345"})
	cfg, err := config.Load(v)
	if err != nil {
		panic(err)
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	registry := prometheus.NewRegistry()
	sink := reporter.NewMetricsSink(reporter.NewLogSink(log), registry)

	shardCount := cfg.BookerConcurrency
	if shardCount == 0 {
		shardCount = runtime.NumCPU()
	}

	dispatcher := dispatch.NewChannelDispatcher(log, shardCount, 1024)

	bookers := make([]*booker.Shard, shardCount)
	for i := range bookers {
		var validatorInstance *validator.Validator
		if cfg.EnableValidation {
			validatorInstance = validator.New()
		}
		bookers[i] = booker.New(orderbook.HashMapList, sink, validatorInstance, cfg.EnableAdvancedCalculating)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for i, shard := range dispatcher.Shards() {
		go dispatch.RunShard(ctx, shard, bookers[i])
	}

	groups := make([]dispatch.Group, len(cfg.MulticastAddresses))
	for i, addr := range cfg.MulticastAddresses {
		groups[i] = dispatch.Group{Address: addr, Exchange: wire.SSE}
	}

	log.Info("booker starting",
		zap.Strings("multicast_addresses", cfg.MulticastAddresses),
		zap.Int("booker_shards", shardCount),
	)

	if err := dispatcher.Join(ctx, groups, cfg.InterfaceAddress); err != nil {
		log.Fatal("dispatcher exited", zap.Error(err))
	}

	log.Info("booker shut down")
}
