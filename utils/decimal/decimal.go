/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package decimal

import (
	"errors"
	"math/big"
	"strings"
)

var (
	// ErrEmptyInput is returned when an empty string is provided.
	ErrEmptyInput = errors.New("decimal: empty input")
	// ErrMalformedNumber indicates input that is neither a decimal nor a
	// rational number literal.
	ErrMalformedNumber = errors.New("decimal: malformed number literal")
)

// Parse converts a number literal to an exact rational. It accepts integer
// ("2", "-13"), rational ("1/2", "-22/7"), decimal ("1.4", ".1") and
// scientific ("5e-16", "1.5e3") forms. The conversion is exact: decimal
// literals become the rational they denote, never a rounded float.
func Parse(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyInput
	}
	// big.Rat rejects a bare leading decimal point.
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	} else if strings.HasPrefix(s, "-.") || strings.HasPrefix(s, "+.") {
		s = s[:1] + "0" + s[1:]
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, ErrMalformedNumber
	}
	return r, nil
}

// Format renders r as a decimal string with the given number of significant
// digits, using scientific notation for very large or small magnitudes.
func Format(r *big.Rat, digits int) string {
	if digits <= 0 {
		digits = 1
	}
	f := new(big.Float).SetPrec(uint(digits)*4 + 32).SetRat(r)
	return f.Text('g', digits)
}

// FormatFixed renders r rounded to a fixed number of decimal places.
func FormatFixed(r *big.Rat, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	f := new(big.Float).SetPrec(uint(decimals)*4 + 64).SetRat(r)
	return f.Text('f', decimals)
}
