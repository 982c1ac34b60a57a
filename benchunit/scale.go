// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"math"
	"strconv"
)

// A Class specifies what order of magnitude prefixes are used to
// format a value.
type Class int

const (
	// Decimal indicates values of a given unit should be scaled
	// by powers of 1000 and use SI prefixes.
	Decimal Class = iota
	// Binary indicates values of a given unit should be scaled by
	// powers of 1024 and use IEC prefixes.
	Binary
)

// ClassOf returns the Class of unit. If unit's numerator is "B" (a
// byte count), it returns Binary. Otherwise, it returns Decimal.
func ClassOf(unit string) Class {
	p := newParser(unit)
	for p.next() {
		if p.denom {
			break
		}
		if p.tok == "B" {
			return Binary
		}
	}
	return Decimal
}

// A Scaler formats numbers in a fixed order of magnitude.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Unscaled value of 1 Prefix (e.g., 1 k => 1000)
	Prefix string  // Unit prefix ("k", "M", "Ki", etc)
}

// Format formats val using s.
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	return string(buf)
}

// Scale formats val using at least three significant digits,
// appending an SI or binary prefix.
func Scale(val float64, cls Class) string {
	return CommonScale([]float64{val}, cls).Format(val)
}

type prefix struct {
	factor float64
	name   string
}

var siPrefixes = []prefix{
	{1e24, "Y"}, {1e21, "Z"}, {1e18, "E"}, {1e15, "P"}, {1e12, "T"},
	{1e9, "G"}, {1e6, "M"}, {1e3, "k"}, {1, ""},
	{1e-3, "m"}, {1e-6, "µ"}, {1e-9, "n"}, {1e-12, "p"}, {1e-15, "f"},
}

var iecPrefixes = []prefix{
	{1 << 60, "Ei"}, {1 << 50, "Pi"}, {1 << 40, "Ti"},
	{1 << 30, "Gi"}, {1 << 20, "Mi"}, {1 << 10, "Ki"}, {1, ""},
}

// CommonScale returns a common Scaler to apply to all values in vals.
// This scale will show at least three significant digits for every
// value.
func CommonScale(vals []float64, cls Class) Scaler {
	// The common scale is determined by the non-zero value
	// closest to zero.
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && !math.IsInf(v, 0) && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}

	prefixes := siPrefixes
	if cls == Binary {
		prefixes = iecPrefixes
	}
	p := prefixes[len(prefixes)-1]
	for _, cand := range prefixes {
		if min >= cand.factor {
			p = cand
			break
		}
	}

	// Show three significant digits of the smallest value.
	var prec int
	switch scaled := min / p.factor; {
	case scaled >= 100:
		prec = 0
	case scaled >= 10:
		prec = 1
	default:
		prec = 2
	}
	return Scaler{prec, p.factor, p.name}
}
