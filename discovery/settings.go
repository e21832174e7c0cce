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

package discovery

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Discovery strategies recognized in a settings document.
const (
	StrategySeeds = "seeds"
	StrategyDNS   = "dns"
)

// Settings is the yaml representation of a cluster discovery configuration.
// Pointer fields distinguish omitted settings from settings explicitly set to
// a zero value; omitted settings take the package defaults.
type Settings struct {
	// Strategy selects the discovery strategy, either "seeds" or "dns".
	Strategy string `yaml:"strategy"`
	// DNS is the DNS name under which cluster nodes are listed. Required by
	// the dns strategy, ignored by the seeds strategy.
	DNS string `yaml:"dns,omitempty"`
	// GossipSeeds lists the seed endpoints. Required by the seeds strategy.
	GossipSeeds []SeedSettings `yaml:"gossipSeeds,omitempty"`
	// MaxDiscoverAttempts bounds the number of discovery rounds; -1 means
	// unlimited.
	MaxDiscoverAttempts *int `yaml:"maxDiscoverAttempts,omitempty"`
	// DiscoverAttemptInterval is the pause between two discovery rounds.
	DiscoverAttemptInterval *Duration `yaml:"discoverAttemptInterval,omitempty"`
	// ExternalGossipPort is the well-known cluster gossip port.
	ExternalGossipPort *int `yaml:"externalGossipPort,omitempty"`
	// GossipTimeout is the gossip request timeout.
	GossipTimeout *Duration `yaml:"gossipTimeout,omitempty"`
}

// SeedSettings is the yaml representation of a single gossip seed.
type SeedSettings struct {
	Address    string `yaml:"address"`
	HostHeader string `yaml:"hostHeader,omitempty"`
}

// Duration decodes a yaml scalar into a time.Duration. Plain integers are
// read as milliseconds; strings are parsed as Go durations ("500ms", "1s").
type Duration time.Duration

var _ yaml.Unmarshaler = (*Duration)(nil)

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid duration node at line %d", node.Line)
	}

	parsed, err := parseDurationValue(node.Value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// parseDurationValue reads a duration either as a plain integer number of
// milliseconds or as a Go duration string.
func parseDurationValue(raw string) (time.Duration, error) {
	if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(millis) * time.Millisecond, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration=(%s): %w", raw, err)
	}
	return parsed, nil
}

// FromFile reads a yaml settings document from the given path and builds the
// configuration out of it. This is the only entry point of the package that
// touches the filesystem; the network is never involved.
func FromFile(path string, opts ...Option) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file=(%s): %w", path, err)
	}
	return FromYAML(data, opts...)
}

// FromYAML parses a yaml settings document and builds the configuration out
// of it. Unknown fields are rejected. Options given here take precedence over
// the document.
func FromYAML(data []byte, opts ...Option) (*Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	settings := new(Settings)
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return settings.Config(opts...)
}

// Config builds the cluster discovery configuration described by the
// settings. All defaulting and validation is shared with NewGossipSeedsConfig
// and NewDNSConfig.
func (s *Settings) Config(opts ...Option) (*Config, error) {
	combined := make([]Option, 0, len(opts)+4)
	if s.MaxDiscoverAttempts != nil {
		combined = append(combined, WithMaxDiscoverAttempts(*s.MaxDiscoverAttempts))
	}
	if s.DiscoverAttemptInterval != nil {
		combined = append(combined, WithDiscoverAttemptInterval(time.Duration(*s.DiscoverAttemptInterval)))
	}
	if s.ExternalGossipPort != nil {
		combined = append(combined, WithExternalGossipPort(*s.ExternalGossipPort))
	}
	if s.GossipTimeout != nil {
		combined = append(combined, WithGossipTimeout(time.Duration(*s.GossipTimeout)))
	}
	combined = append(combined, opts...)

	switch s.Strategy {
	case StrategySeeds:
		seeds := make([]GossipSeed, 0, len(s.GossipSeeds))
		for _, seedSettings := range s.GossipSeeds {
			seed, err := ParseGossipSeed(seedSettings.Address)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
			}
			if seedSettings.HostHeader != "" {
				seed = NewGossipSeedWithHostHeader(seed.Host(), seed.Port(), seedSettings.HostHeader)
			}
			seeds = append(seeds, seed)
		}
		return NewGossipSeedsConfig(seeds, combined...)
	case StrategyDNS:
		return NewDNSConfig(s.DNS, combined...)
	default:
		return nil, fmt.Errorf("%w: unknown discovery strategy=(%s)", ErrInvalidConfiguration, s.Strategy)
	}
}
