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
	"time"

	"github.com/tochemey/streamdb/log"
)

// options is the mutable scratch state of a configuration under construction.
// Pointer fields distinguish "not provided" from "provided as zero", which
// matters for maxDiscoverAttempts and externalGossipPort where the zero value
// has sentinel semantics. An options value is confined to a single
// construction call and never outlives it.
type options struct {
	dns                     string
	maxDiscoverAttempts     *int
	discoverAttemptInterval *time.Duration
	externalGossipPort      *int
	gossipSeeds             []GossipSeed
	gossipTimeout           *time.Duration
	logger                  log.Logger
}

func newOptions() *options {
	return &options{logger: log.DiscardLogger}
}

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of the configuration under construction.
	Apply(*options)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*options)

func (f OptionFunc) Apply(o *options) {
	f(o)
}

// WithMaxDiscoverAttempts sets the maximum number of attempts for discovery
// (by default, 10 attempts). Use UnlimitedDiscoverAttempts for unlimited;
// any other value must lie within AttemptsRange.
func WithMaxDiscoverAttempts(attempts int) Option {
	return OptionFunc(func(o *options) {
		o.maxDiscoverAttempts = &attempts
	})
}

// WithDiscoverAttemptInterval sets the interval between discovering endpoint
// attempts (by default, 500 milliseconds).
func WithDiscoverAttemptInterval(interval time.Duration) Option {
	return OptionFunc(func(o *options) {
		o.discoverAttemptInterval = &interval
	})
}

// WithExternalGossipPort sets the well-known port on which the cluster gossip
// is taking place (by default, 30778 on the DNS strategy). The value must be
// strictly positive.
func WithExternalGossipPort(port int) Option {
	return OptionFunc(func(o *options) {
		o.externalGossipPort = &port
	})
}

// WithGossipSeeds appends gossip seed endpoints to the configuration under
// construction.
func WithGossipSeeds(seeds ...GossipSeed) Option {
	return OptionFunc(func(o *options) {
		o.gossipSeeds = append(o.gossipSeeds, seeds...)
	})
}

// WithGossipTimeout sets the period after which gossip times out if none is
// received (by default, 1 second).
func WithGossipTimeout(timeout time.Duration) Option {
	return OptionFunc(func(o *options) {
		o.gossipTimeout = &timeout
	})
}

// WithLogger sets the logger used to report the resolved configuration. By
// default nothing is logged.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(o *options) {
		o.logger = logger
	})
}
