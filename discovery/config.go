// MIT License
//
// Copyright (c) 2023-2026 StreamDB Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package discovery holds the cluster discovery configuration of the StreamDB
// client. It produces a validated, immutable Config describing how the
// cluster-discovery engine should locate server nodes, either from a static
// list of gossip seeds or by resolving a DNS name. The package performs no
// network I/O of its own; the retry, interval and timeout values it carries
// are data for the discovery engine to interpret.
package discovery

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tochemey/streamdb/internal/validation"
)

const (
	// DefaultMaxDiscoverAttempts is the number of discovery rounds attempted
	// before giving up when no explicit value is set.
	DefaultMaxDiscoverAttempts = 10
	// DefaultDiscoverAttemptInterval is the pause between two discovery rounds.
	DefaultDiscoverAttemptInterval = 500 * time.Millisecond
	// DefaultGossipTimeout is the period after which a gossip request times
	// out when no response is received.
	DefaultGossipTimeout = time.Second
	// DefaultExternalGossipPort is the well-known port on which cluster
	// gossip takes place. The DNS strategy falls back to it when no explicit
	// port is set.
	DefaultExternalGossipPort = 30778
	// UnlimitedDiscoverAttempts makes the discovery engine retry indefinitely.
	UnlimitedDiscoverAttempts = -1
)

// AttemptsRange bounds the values maxDiscoverAttempts may take when it is
// explicitly set. UnlimitedDiscoverAttempts is accepted regardless of the
// range.
var AttemptsRange = Range{Lower: 1, Upper: math.MaxInt32}

// Range is a closed integer interval.
type Range struct {
	Lower int
	Upper int
}

// Contains reports whether n lies within the range bounds, inclusive.
func (r Range) Contains(n int) bool {
	return n >= r.Lower && n <= r.Upper
}

// String returns the range in [lower..upper] form.
func (r Range) String() string {
	return fmt.Sprintf("[%d..%d]", r.Lower, r.Upper)
}

// Config defines how the discovery engine locates the cluster nodes before a
// connection is established. A Config is immutable once built and safe to
// share across goroutines; it is created exclusively through
// NewGossipSeedsConfig, NewDNSConfig or one of the parsing entry points that
// delegate to them.
type Config struct {
	dns                     string
	maxDiscoverAttempts     int
	discoverAttemptInterval time.Duration
	externalGossipPort      int
	gossipSeeds             []GossipSeed
	gossipTimeout           time.Duration
}

// NewGossipSeedsConfig builds a configuration for the static seed-list
// discovery strategy. At least one gossip seed is required, either as an
// argument or through WithGossipSeeds; the build fails with
// ErrInvalidConfiguration otherwise.
func NewGossipSeedsConfig(seeds []GossipSeed, opts ...Option) (*Config, error) {
	options := newOptions()
	options.gossipSeeds = append(options.gossipSeeds, seeds...)
	for _, opt := range opts {
		opt.Apply(options)
	}

	if len(options.gossipSeeds) == 0 {
		return nil, fmt.Errorf("%w: gossip seeds are not specified", ErrInvalidConfiguration)
	}

	return finalize(options)
}

// NewGossipSeedEndpointsConfig is a convenience variant of
// NewGossipSeedsConfig that accepts raw host:port addresses. Each address is
// wrapped into a gossip seed with no host-header override.
func NewGossipSeedEndpointsConfig(addresses []string, opts ...Option) (*Config, error) {
	seeds := make([]GossipSeed, 0, len(addresses))
	for _, address := range addresses {
		seed, err := ParseGossipSeed(address)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		seeds = append(seeds, seed)
	}
	return NewGossipSeedsConfig(seeds, opts...)
}

// NewDNSConfig builds a configuration for the DNS discovery strategy. The DNS
// name under which the cluster nodes are listed is required; the build fails
// with ErrInvalidConfiguration when it is blank. When no external gossip port
// is set the well-known DefaultExternalGossipPort is used, since resolved
// hosts always need a concrete port to be contacted on.
func NewDNSConfig(dns string, opts ...Option) (*Config, error) {
	options := newOptions()
	for _, opt := range opts {
		opt.Apply(options)
	}

	if strings.TrimSpace(dns) == "" {
		return nil, fmt.Errorf("%w: dns is null or empty", ErrInvalidConfiguration)
	}

	// exactly one discovery strategy is materialized per configuration
	if len(options.gossipSeeds) != 0 {
		return nil, fmt.Errorf("%w: gossip seeds cannot be combined with dns discovery", ErrInvalidConfiguration)
	}

	options.dns = dns
	if options.externalGossipPort == nil {
		port := DefaultExternalGossipPort
		options.externalGossipPort = &port
	}

	return finalize(options)
}

// finalize applies the strategy-agnostic defaults, runs the validation rules
// and freezes the configuration. Strategy-specific pre-checks have already
// run by the time it is called.
func finalize(options *options) (*Config, error) {
	config := &Config{
		dns:                     options.dns,
		maxDiscoverAttempts:     DefaultMaxDiscoverAttempts,
		discoverAttemptInterval: DefaultDiscoverAttemptInterval,
		gossipSeeds:             make([]GossipSeed, len(options.gossipSeeds)),
		gossipTimeout:           DefaultGossipTimeout,
	}

	// the builder's seed slice is never aliased into the built config
	copy(config.gossipSeeds, options.gossipSeeds)

	chain := validation.New(validation.FailFast())

	if options.maxDiscoverAttempts != nil {
		config.maxDiscoverAttempts = *options.maxDiscoverAttempts
		if config.maxDiscoverAttempts != UnlimitedDiscoverAttempts {
			chain = chain.AddValidator(validation.NewRangeValidator("maxDiscoverAttempts",
				config.maxDiscoverAttempts, AttemptsRange.Lower, AttemptsRange.Upper))
		}
	}

	if options.externalGossipPort != nil {
		config.externalGossipPort = *options.externalGossipPort
		chain = chain.AddAssertion(config.externalGossipPort > 0, "externalGossipPort should be positive")
	}

	if options.discoverAttemptInterval != nil {
		config.discoverAttemptInterval = *options.discoverAttemptInterval
	}
	chain = chain.AddAssertion(config.discoverAttemptInterval >= 0, "discoverAttemptInterval should not be negative")

	if options.gossipTimeout != nil {
		config.gossipTimeout = *options.gossipTimeout
	}
	chain = chain.AddAssertion(config.gossipTimeout >= 0, "gossipTimeout should not be negative")

	for _, seed := range config.gossipSeeds {
		chain = chain.AddValidator(validation.NewTCPAddressValidator(seed.String()))
	}

	if err := chain.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	options.logger.Debugf("resolved cluster discovery configuration: %s", config)
	return config, nil
}

// DNS returns the DNS name to use for discovering endpoints. It is empty when
// the seed-list strategy is in use.
func (x *Config) DNS() string {
	return x.dns
}

// MaxDiscoverAttempts returns the maximum number of attempts for discovering
// endpoints. UnlimitedDiscoverAttempts means retry indefinitely.
func (x *Config) MaxDiscoverAttempts() int {
	return x.maxDiscoverAttempts
}

// DiscoverAttemptInterval returns the interval between discovery attempts.
func (x *Config) DiscoverAttemptInterval() time.Duration {
	return x.discoverAttemptInterval
}

// ExternalGossipPort returns the well-known port on which the cluster gossip
// is taking place. It is zero when the seed-list strategy is in use and no
// port was set.
func (x *Config) ExternalGossipPort() int {
	return x.externalGossipPort
}

// GossipSeeds returns the endpoints for seeding gossip. The returned slice is
// a copy; mutating it does not affect the configuration.
func (x *Config) GossipSeeds() []GossipSeed {
	seeds := make([]GossipSeed, len(x.gossipSeeds))
	copy(seeds, x.gossipSeeds)
	return seeds
}

// GossipTimeout returns the period after which gossip times out if none is
// received.
func (x *Config) GossipTimeout() time.Duration {
	return x.gossipTimeout
}

// String returns a human-readable rendering of the configuration.
func (x *Config) String() string {
	seeds := make([]string, len(x.gossipSeeds))
	for i, seed := range x.gossipSeeds {
		seeds[i] = seed.String()
	}
	return fmt.Sprintf("Config{dns=%s, maxDiscoverAttempts=%d, discoverAttemptInterval=%s, externalGossipPort=%d, gossipSeeds=[%s], gossipTimeout=%s}",
		x.dns,
		x.maxDiscoverAttempts,
		x.discoverAttemptInterval,
		x.externalGossipPort,
		strings.Join(seeds, ", "),
		x.gossipTimeout)
}
