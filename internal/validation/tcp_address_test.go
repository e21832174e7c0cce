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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTCPAddressValidator(t *testing.T) {
	testCases := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "valid host and port", address: "10.0.0.1:2113", wantErr: false},
		{name: "valid dns name and port", address: "node1.cluster.internal:2113", wantErr: false},
		{name: "valid bracketed ipv6", address: "[::1]:2113", wantErr: false},
		{name: "surrounding whitespace", address: " 10.0.0.1:2113 ", wantErr: false},
		{name: "missing port", address: "10.0.0.1", wantErr: true},
		{name: "missing host", address: ":2113", wantErr: true},
		{name: "non-numeric port", address: "10.0.0.1:http", wantErr: true},
		{name: "port out of bounds", address: "10.0.0.1:70000", wantErr: true},
		{name: "empty address", address: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewTCPAddressValidator(tc.address).Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
