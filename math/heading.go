// math/heading.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Headings in the airspace follow screen conventions: 0 degrees points
// along +x and angles increase clockwise, since +y points down the
// screen.

// Reduces it to [0,360).
func NormalizeHeading(h float64) float64 {
	if h < 0 {
		h = 360 - NormalizeHeading(-h)
	}
	h = Mod(h, 360)
	if h >= 360 {
		// 360 - tiny can round to 360
		h = 0
	}
	return h
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float64, b float64) float64 {
	var d float64
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	d = NormalizeHeading(d)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// HeadingSignedTurn returns the signed turn in degrees to go from cur to
// target the short way around; positive values are clockwise.  First
// find the angle to rotate the target heading by so that it's aligned
// with 180 degrees. This lets us not worry about the complexities of the
// wrap around at 0/360..
func HeadingSignedTurn(cur, target float64) float64 {
	rot := NormalizeHeading(180 - target)
	return 180 - NormalizeHeading(cur+rot) // w.r.t. 180 target
}

func OppositeHeading(h float64) float64 {
	return NormalizeHeading(h + 180)
}

// HeadingVector returns the unit vector along the given heading.
func HeadingVector(hdg float64) [2]float64 {
	r := Radians(hdg)
	return [2]float64{Cos(r), Sin(r)}
}

// ShortCompass converts a heading expressed in degrees into an abbreviated
// string corresponding to the closest screen direction.
func ShortCompass(heading float64) string {
	h := NormalizeHeading(heading + 22.5) // now [0,45] is east, etc...
	idx := int(h / 45)
	return [...]string{"E", "SE", "S", "SW", "W", "NW", "N", "NE"}[idx]
}
