// Package config loads the booker's runtime configuration. File loading
// and flag parsing are out of scope for the core module -- an embedding
// binary (a cmd/ entry point) is expected to call Load with its own
// *viper.Viper already populated from flags/env/file, so this package
// stays free of any opinion about where settings come from.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is every setting the booker core needs at startup.
type Config struct {
	// MulticastAddresses is a list of "ip:port" multicast groups to
	// join, one Channel Dispatcher receiver per address.
	MulticastAddresses []string `mapstructure:"multicast_addresses"`
	// InterfaceAddress is the local NIC IPv4 address multicast joins
	// bind to.
	InterfaceAddress string `mapstructure:"interface_address"`
	// BookerConcurrency is the number of booker shards; symbols are
	// routed to a shard by hash. Zero means "use runtime.NumCPU()".
	BookerConcurrency int `mapstructure:"booker_concurrency"`
	// EnableValidation turns on the MD validator cross-check against
	// exchange-published ticks.
	EnableValidation bool `mapstructure:"enable_validation"`
	// EnableAdvancedCalculating turns on the ranged accumulator.
	EnableAdvancedCalculating bool `mapstructure:"enable_advanced_calculating"`
}

// Load reads a Config out of v, applying defaults for anything unset.
func Load(v *viper.Viper) (Config, error) {
	v.SetDefault("booker_concurrency", 0)
	v.SetDefault("enable_validation", true)
	v.SetDefault("enable_advanced_calculating", true)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if len(cfg.MulticastAddresses) == 0 {
		return Config{}, fmt.Errorf("config: multicast_addresses must not be empty")
	}
	return cfg, nil
}
