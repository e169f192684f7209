// math/math_test.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestHeadingDifference(t *testing.T) {
	type hd struct {
		a, b, d float64
	}

	for _, h := range []hd{hd{10, 90, 80}, hd{350, 12, 22}, hd{340, 120, 140}, hd{-90, 80, 170},
		hd{40, 181, 141}, hd{-170, 160, 30}, hd{-120, -150, 30}} {
		if HeadingDifference(h.a, h.b) != h.d {
			t.Errorf("HeadingDifference(%f, %f) -> %f, expected %f", h.a, h.b,
				HeadingDifference(h.a, h.b), h.d)
		}
		if HeadingDifference(h.b, h.a) != h.d {
			t.Errorf("HeadingDifference(%f, %f) -> %f, expected %f", h.b, h.a,
				HeadingDifference(h.b, h.a), h.d)
		}
	}
}

func TestOppositeHeading(t *testing.T) {
	h := [][2]float64{{90, 270}, {1, 181}, {2, 182}, {350, 170}}
	for _, pair := range h {
		if OppositeHeading(pair[0]) != pair[1] {
			t.Errorf("opposite heading error: %f -> %f, expected %f",
				pair[0], OppositeHeading(pair[0]), pair[1])
		}
		if OppositeHeading(pair[1]) != pair[0] {
			t.Errorf("opposite heading error: %f -> %f, expected %f",
				pair[1], OppositeHeading(pair[1]), pair[0])
		}
	}
}

func TestNormalizeHeading(t *testing.T) {
	h := [][2]float64{{90, 90}, {360, 0}, {-10, 350}, {380, 20}, {-380, 340}, {-360, 0}, {720, 0}}
	for _, pair := range h {
		if NormalizeHeading(pair[0]) != pair[1] {
			t.Errorf("normalize heading error: %f -> %f, expected %f",
				pair[0], NormalizeHeading(pair[0]), pair[1])
		}
	}
}

func TestHeadingSignedTurn(t *testing.T) {
	turns := [][3]float64{{10, 90, 80}, {10, 350, -20}, {120, 10, -110}, {120, 270, 150}}
	for _, turn := range turns {
		if result := HeadingSignedTurn(turn[0], turn[1]); result != turn[2] {
			t.Errorf("HeadingSignedTurn(%f, %f) = %f; expected %f", turn[0], turn[1], result, turn[2])
		}
	}
}

func TestShortCompass(t *testing.T) {
	for _, c := range []struct {
		h   float64
		dir string
	}{{0, "E"}, {22, "E"}, {338, "E"}, {45, "SE"}, {90, "S"}, {180, "W"}, {270, "N"}, {300, "NE"}} {
		if got := ShortCompass(c.h); got != c.dir {
			t.Errorf("ShortCompass(%f) = %s, expected %s", c.h, got, c.dir)
		}
	}
}

func TestDistance2i(t *testing.T) {
	tests := []struct {
		a, b Point2i
		d    float64
	}{
		{Point2i{0, 0}, Point2i{3, 4}, 5},
		{Point2i{-3, 0}, Point2i{0, 4}, 5},
		{Point2i{7, 7}, Point2i{7, 7}, 0},
	}
	for _, tt := range tests {
		if d := Distance2i(tt.a, tt.b); d != tt.d {
			t.Errorf("Distance2i(%v, %v) = %f, expected %f", tt.a, tt.b, d, tt.d)
		}
	}
}

func TestDiv2iTruncates(t *testing.T) {
	tests := []struct {
		p    Point2i
		d    int
		want Point2i
	}{
		{Point2i{39, 41}, 20, Point2i{1, 2}},
		{Point2i{-39, -1}, 20, Point2i{-1, 0}},
	}
	for _, tt := range tests {
		if got := Div2i(tt.p, tt.d); got != tt.want {
			t.Errorf("Div2i(%v, %d) = %v, expected %v", tt.p, tt.d, got, tt.want)
		}
	}
}

func TestExtent2iInside(t *testing.T) {
	e := Extent2i{P1: Point2i{10, 5}}
	if !e.Inside(Point2i{10, 5}) || !e.Inside(Point2i{0, 0}) {
		t.Errorf("edges should be inside %v", e)
	}
	if e.Inside(Point2i{11, 0}) || e.Inside(Point2i{0, -1}) {
		t.Errorf("points outside reported inside %v", e)
	}
	if e.Width() != 10 || e.Height() != 5 {
		t.Errorf("Width/Height = %d/%d, expected 10/5", e.Width(), e.Height())
	}
}
