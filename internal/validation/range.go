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

import "fmt"

// rangeValidator checks that a field value lies within a closed interval.
type rangeValidator struct {
	fieldName string
	value     int
	lower     int
	upper     int
}

var _ Validator = rangeValidator{}

// NewRangeValidator creates a validator asserting that the named field value
// lies within [lower..upper], inclusive.
func NewRangeValidator(fieldName string, value, lower, upper int) Validator {
	return rangeValidator{
		fieldName: fieldName,
		value:     value,
		lower:     lower,
		upper:     upper,
	}
}

// Validate implements Validator.
func (v rangeValidator) Validate() error {
	if v.value < v.lower || v.value > v.upper {
		return fmt.Errorf("%s value is out of range. Allowed range: [%d..%d]", v.fieldName, v.lower, v.upper)
	}
	return nil
}
