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
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultGossipSeedPort is the standard port on which server nodes expose
// their external gossip endpoint. ParseGossipSeed falls back to it when the
// given address carries no port.
const DefaultGossipSeedPort = 2113

// GossipSeed is a known server endpoint used as a starting point for
// discovering the full cluster topology. When the server requires a specific
// Host header to be sent as part of the gossip request, set the host-header
// override with NewGossipSeedWithHostHeader.
type GossipSeed struct {
	host       string
	port       int
	hostHeader string
}

// NewGossipSeed creates a gossip seed for the given host and port with no
// host-header override.
func NewGossipSeed(host string, port int) GossipSeed {
	return GossipSeed{host: host, port: port}
}

// NewGossipSeedWithHostHeader creates a gossip seed that presents the given
// virtual-host name when gossip is requested over HTTP.
func NewGossipSeedWithHostHeader(host string, port int, hostHeader string) GossipSeed {
	return GossipSeed{host: host, port: port, hostHeader: hostHeader}
}

// ParseGossipSeed parses an address of the form host:port into a gossip seed.
// A bare host without a port gets DefaultGossipSeedPort; a bare IPv6 address
// must be bracketed for its port to be recognized.
func ParseGossipSeed(address string) (GossipSeed, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return GossipSeed{}, errors.New("invalid gossip seed: empty address")
	}

	if !strings.Contains(address, ":") {
		return GossipSeed{host: address, port: DefaultGossipSeedPort}, nil
	}

	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return GossipSeed{}, fmt.Errorf("invalid gossip seed=(%s): %w", address, err)
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return GossipSeed{}, fmt.Errorf("invalid gossip seed=(%s): %w", address, err)
	}

	if host == "" || portNum < 1 || portNum > 65535 {
		return GossipSeed{}, fmt.Errorf("invalid gossip seed=(%s)", address)
	}

	return GossipSeed{host: host, port: portNum}, nil
}

// Host returns the seed host name or IP address.
func (s GossipSeed) Host() string {
	return s.host
}

// Port returns the seed port.
func (s GossipSeed) Port() int {
	return s.port
}

// HostHeader returns the Host header override to present when requesting
// gossip, or the empty string when none is set.
func (s GossipSeed) HostHeader() string {
	return s.hostHeader
}

// String returns the seed endpoint in host:port form.
func (s GossipSeed) String() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}
