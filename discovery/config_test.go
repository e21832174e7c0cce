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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/streamdb/log"
)

func TestNewGossipSeedsConfig(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		seeds := []GossipSeed{NewGossipSeed("10.0.0.1", 2113)}
		config, err := NewGossipSeedsConfig(seeds)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Empty(t, config.DNS())
		assert.Exactly(t, DefaultMaxDiscoverAttempts, config.MaxDiscoverAttempts())
		assert.Exactly(t, 500*time.Millisecond, config.DiscoverAttemptInterval())
		assert.Exactly(t, 0, config.ExternalGossipPort())
		assert.Exactly(t, time.Second, config.GossipTimeout())
		assert.Equal(t, seeds, config.GossipSeeds())
	})
	t.Run("With seed order preserved", func(t *testing.T) {
		seeds := []GossipSeed{
			NewGossipSeed("10.0.0.3", 2113),
			NewGossipSeed("10.0.0.1", 2113),
			NewGossipSeed("10.0.0.2", 2113),
		}
		config, err := NewGossipSeedsConfig(seeds)
		require.NoError(t, err)
		assert.Equal(t, seeds, config.GossipSeeds())
	})
	t.Run("With seeds defensively copied", func(t *testing.T) {
		seeds := []GossipSeed{
			NewGossipSeed("10.0.0.1", 2113),
			NewGossipSeed("10.0.0.2", 2113),
		}
		config, err := NewGossipSeedsConfig(seeds)
		require.NoError(t, err)

		seeds[0] = NewGossipSeed("10.9.9.9", 1111)
		assert.Equal(t, "10.0.0.1:2113", config.GossipSeeds()[0].String())

		read := config.GossipSeeds()
		read[1] = NewGossipSeed("10.9.9.9", 1111)
		assert.Equal(t, "10.0.0.2:2113", config.GossipSeeds()[1].String())
	})
	t.Run("With extra seeds from option", func(t *testing.T) {
		config, err := NewGossipSeedsConfig(
			[]GossipSeed{NewGossipSeed("10.0.0.1", 2113)},
			WithGossipSeeds(NewGossipSeed("10.0.0.2", 2113)))
		require.NoError(t, err)
		require.Len(t, config.GossipSeeds(), 2)
		assert.Equal(t, "10.0.0.2:2113", config.GossipSeeds()[1].String())
	})
	t.Run("With no seeds", func(t *testing.T) {
		config, err := NewGossipSeedsConfig(nil)
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.EqualError(t, err, "invalid configuration: gossip seeds are not specified")
	})
	t.Run("With empty seeds regardless of other settings", func(t *testing.T) {
		config, err := NewGossipSeedsConfig([]GossipSeed{},
			WithMaxDiscoverAttempts(5),
			WithGossipTimeout(2*time.Second))
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
	t.Run("With invalid seed endpoint", func(t *testing.T) {
		config, err := NewGossipSeedsConfig([]GossipSeed{NewGossipSeed("", 2113)})
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
	t.Run("With explicit positive external gossip port accepted", func(t *testing.T) {
		config, err := NewGossipSeedsConfig(
			[]GossipSeed{NewGossipSeed("10.0.0.1", 2113)},
			WithExternalGossipPort(2113))
		require.NoError(t, err)
		assert.Exactly(t, 2113, config.ExternalGossipPort())
	})
}

func TestNewGossipSeedEndpointsConfig(t *testing.T) {
	t.Run("With happy path", func(t *testing.T) {
		config, err := NewGossipSeedEndpointsConfig([]string{"10.0.0.1:2113", "10.0.0.2:2113"})
		require.NoError(t, err)
		require.Len(t, config.GossipSeeds(), 2)
		assert.Empty(t, config.DNS())
		assert.Exactly(t, DefaultMaxDiscoverAttempts, config.MaxDiscoverAttempts())
		assert.Exactly(t, time.Second, config.GossipTimeout())
		assert.Empty(t, config.GossipSeeds()[0].HostHeader())
	})
	t.Run("With malformed address", func(t *testing.T) {
		config, err := NewGossipSeedEndpointsConfig([]string{"10.0.0.1:not-a-port"})
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestNewDNSConfig(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		config, err := NewDNSConfig("cluster.internal")
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Exactly(t, "cluster.internal", config.DNS())
		assert.Exactly(t, DefaultExternalGossipPort, config.ExternalGossipPort())
		assert.Exactly(t, DefaultMaxDiscoverAttempts, config.MaxDiscoverAttempts())
		assert.Exactly(t, 500*time.Millisecond, config.DiscoverAttemptInterval())
		assert.Exactly(t, time.Second, config.GossipTimeout())
		assert.Empty(t, config.GossipSeeds())
	})
	t.Run("With explicit port", func(t *testing.T) {
		config, err := NewDNSConfig("cluster.internal", WithExternalGossipPort(2113))
		require.NoError(t, err)
		assert.Exactly(t, 2113, config.ExternalGossipPort())
	})
	t.Run("With empty dns name", func(t *testing.T) {
		config, err := NewDNSConfig("")
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.EqualError(t, err, "invalid configuration: dns is null or empty")
	})
	t.Run("With blank dns name regardless of other settings", func(t *testing.T) {
		config, err := NewDNSConfig("  ", WithMaxDiscoverAttempts(5))
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
	t.Run("With zero port explicitly set", func(t *testing.T) {
		config, err := NewDNSConfig("cluster.internal", WithExternalGossipPort(0))
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.EqualError(t, err, "invalid configuration: externalGossipPort should be positive")
	})
	t.Run("With negative port explicitly set", func(t *testing.T) {
		config, err := NewDNSConfig("cluster.internal", WithExternalGossipPort(-2113))
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
	t.Run("With gossip seeds rejected", func(t *testing.T) {
		config, err := NewDNSConfig("cluster.internal",
			WithGossipSeeds(NewGossipSeed("10.0.0.1", 2113)))
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.EqualError(t, err, "invalid configuration: gossip seeds cannot be combined with dns discovery")
	})
}

func TestMaxDiscoverAttemptsValidation(t *testing.T) {
	seeds := []GossipSeed{NewGossipSeed("10.0.0.1", 2113)}

	t.Run("With unlimited sentinel", func(t *testing.T) {
		config, err := NewGossipSeedsConfig(seeds, WithMaxDiscoverAttempts(UnlimitedDiscoverAttempts))
		require.NoError(t, err)
		assert.Exactly(t, UnlimitedDiscoverAttempts, config.MaxDiscoverAttempts())
	})
	t.Run("With value in range", func(t *testing.T) {
		config, err := NewDNSConfig("cluster.internal", WithMaxDiscoverAttempts(1))
		require.NoError(t, err)
		assert.Exactly(t, 1, config.MaxDiscoverAttempts())
	})
	t.Run("With zero", func(t *testing.T) {
		config, err := NewGossipSeedsConfig(seeds, WithMaxDiscoverAttempts(0))
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.EqualError(t, err, "invalid configuration: maxDiscoverAttempts value is out of range. Allowed range: [1..2147483647]")
	})
	t.Run("With negative value other than the sentinel", func(t *testing.T) {
		config, err := NewGossipSeedsConfig(seeds, WithMaxDiscoverAttempts(-5))
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestDurationValidation(t *testing.T) {
	seeds := []GossipSeed{NewGossipSeed("10.0.0.1", 2113)}

	t.Run("With negative discover attempt interval", func(t *testing.T) {
		config, err := NewGossipSeedsConfig(seeds, WithDiscoverAttemptInterval(-time.Second))
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
	t.Run("With negative gossip timeout", func(t *testing.T) {
		config, err := NewDNSConfig("cluster.internal", WithGossipTimeout(-time.Second))
		require.Error(t, err)
		require.Nil(t, config)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
	t.Run("With explicit zero durations", func(t *testing.T) {
		config, err := NewGossipSeedsConfig(seeds,
			WithDiscoverAttemptInterval(0),
			WithGossipTimeout(0))
		require.NoError(t, err)
		assert.Zero(t, config.DiscoverAttemptInterval())
		assert.Zero(t, config.GossipTimeout())
	})
}

func TestConfigString(t *testing.T) {
	config, err := NewGossipSeedsConfig([]GossipSeed{NewGossipSeed("10.0.0.1", 2113)})
	require.NoError(t, err)
	expected := "Config{dns=, maxDiscoverAttempts=10, discoverAttemptInterval=500ms, externalGossipPort=0, gossipSeeds=[10.0.0.1:2113], gossipTimeout=1s}"
	assert.Equal(t, expected, config.String())
}

func TestWithLoggerReportsResolvedConfig(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := log.NewZap(log.DebugLevel, buffer)

	config, err := NewDNSConfig("cluster.internal", WithLogger(logger))
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Contains(t, buffer.String(), "resolved cluster discovery configuration")
	assert.Contains(t, buffer.String(), "cluster.internal")
}

func TestAttemptsRange(t *testing.T) {
	assert.True(t, AttemptsRange.Contains(1))
	assert.True(t, AttemptsRange.Contains(10))
	assert.False(t, AttemptsRange.Contains(0))
	assert.False(t, AttemptsRange.Contains(-1))
	assert.Equal(t, "[1..2147483647]", AttemptsRange.String())
}

func TestErrInvalidConfigurationMatching(t *testing.T) {
	_, err := NewGossipSeedsConfig(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}
