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
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Connection string schemes. The plain scheme carries a comma-separated list
// of gossip seed endpoints; the discover scheme carries a single DNS name,
// optionally with the external gossip port.
const (
	SchemeSeeds    = "streamdb"
	SchemeDiscover = "streamdb+discover"
)

// ParseConnectionString builds a cluster discovery configuration from a
// connection string:
//
//	streamdb://10.0.0.1:2113,10.0.0.2:2113?maxDiscoverAttempts=5
//	streamdb+discover://cluster.internal:30778?gossipTimeout=2s
//
// Recognized query parameters are maxDiscoverAttempts,
// discoverAttemptInterval, gossipTimeout and externalGossipPort; durations
// accept either a plain integer number of milliseconds or a Go duration
// string. Unknown parameters are rejected. Parsing performs no name
// resolution. Options given here take precedence over the connection string.
func ParseConnectionString(connString string, opts ...Option) (*Config, error) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(connString), "://")
	if !found {
		return nil, fmt.Errorf("%w: connection string=(%s) has no scheme", ErrInvalidConfiguration, connString)
	}

	authority, rawQuery, _ := strings.Cut(rest, "?")
	authority = strings.TrimSuffix(authority, "/")
	if authority == "" || strings.ContainsAny(authority, "/@") {
		return nil, fmt.Errorf("%w: connection string=(%s) has an invalid authority", ErrInvalidConfiguration, connString)
	}

	queryOpts, err := parseQueryOptions(rawQuery)
	if err != nil {
		return nil, err
	}
	combined := append(queryOpts, opts...)

	switch scheme {
	case SchemeSeeds:
		return NewGossipSeedEndpointsConfig(strings.Split(authority, ","), combined...)
	case SchemeDiscover:
		dns := authority
		if strings.Contains(authority, ":") {
			host, port, err := net.SplitHostPort(authority)
			if err != nil {
				return nil, fmt.Errorf("%w: connection string=(%s): %w", ErrInvalidConfiguration, connString, err)
			}
			portNum, err := strconv.Atoi(port)
			if err != nil {
				return nil, fmt.Errorf("%w: connection string=(%s): %w", ErrInvalidConfiguration, connString, err)
			}
			dns = host
			combined = append([]Option{WithExternalGossipPort(portNum)}, combined...)
		}
		return NewDNSConfig(dns, combined...)
	default:
		return nil, fmt.Errorf("%w: unknown connection string scheme=(%s)", ErrInvalidConfiguration, scheme)
	}
}

func parseQueryOptions(rawQuery string) ([]Option, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	opts := make([]Option, 0, len(values))
	for key := range values {
		value := values.Get(key)
		switch key {
		case "maxDiscoverAttempts":
			attempts, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid maxDiscoverAttempts=(%s): %w", ErrInvalidConfiguration, value, err)
			}
			opts = append(opts, WithMaxDiscoverAttempts(attempts))
		case "discoverAttemptInterval":
			interval, err := parseDurationValue(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
			}
			opts = append(opts, WithDiscoverAttemptInterval(interval))
		case "gossipTimeout":
			timeout, err := parseDurationValue(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
			}
			opts = append(opts, WithGossipTimeout(timeout))
		case "externalGossipPort":
			port, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid externalGossipPort=(%s): %w", ErrInvalidConfiguration, value, err)
			}
			opts = append(opts, WithExternalGossipPort(port))
		default:
			return nil, fmt.Errorf("%w: unknown connection string parameter=(%s)", ErrInvalidConfiguration, key)
		}
	}
	return opts, nil
}
