// math/core.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Degrees converts an angle expressed in radians to degrees
func Degrees(r float64) float64 {
	return r * 180 / gomath.Pi
}

// Radians converts an angle expressed in degrees to radians
func Radians(d float64) float64 {
	return d / 180 * gomath.Pi
}

// A few thin wrappers so that callers don't need to import both this
// package and the standard library's math package.

func Sin(a float64) float64 { return gomath.Sin(a) }

func Cos(a float64) float64 { return gomath.Cos(a) }

func Atan(a float64) float64 { return gomath.Atan(a) }

func Sqrt(a float64) float64 { return gomath.Sqrt(a) }

func Ceil(v float64) float64 { return gomath.Ceil(v) }

// Mod returns the floating-point remainder of a/b; the result has the
// sign of a.
func Mod(a, b float64) float64 {
	return gomath.Mod(a, b)
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}
