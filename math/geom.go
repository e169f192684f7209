// math/geom.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "fmt"

// Point2i is an integer 2D point; depending on context it is either a
// grid cell or a position in the finer-grained sub-cell units used by
// the simulation.
type Point2i [2]int

func (p Point2i) X() int { return p[0] }
func (p Point2i) Y() int { return p[1] }

func (p Point2i) String() string {
	return fmt.Sprintf("(%d,%d)", p[0], p[1])
}

func Add2i(a, b Point2i) Point2i {
	return Point2i{a[0] + b[0], a[1] + b[1]}
}

func Sub2i(a, b Point2i) Point2i {
	return Point2i{a[0] - b[0], a[1] - b[1]}
}

func Scale2i(p Point2i, s int) Point2i {
	return Point2i{p[0] * s, p[1] * s}
}

// Div2i divides both components by d, truncating toward zero.
func Div2i(p Point2i, d int) Point2i {
	return Point2i{p[0] / d, p[1] / d}
}

// Distance2i returns the Euclidean distance between two points.
func Distance2i(a, b Point2i) float64 {
	return Sqrt(float64(Sqr(a[0]-b[0]) + Sqr(a[1]-b[1])))
}

// Extent2i is an axis-aligned integer box; the max corner is inclusive.
type Extent2i struct {
	P0, P1 Point2i
}

func (e Extent2i) Width() int  { return e.P1[0] - e.P0[0] }
func (e Extent2i) Height() int { return e.P1[1] - e.P0[1] }

// Inside reports whether p is in the box, including its edges.
func (e Extent2i) Inside(p Point2i) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}
