// nav/heading.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/airportcontrol/airportcontrol/math"
)

// TurnMode records whether the aircraft is in the middle of a smooth turn
// toward its current waypoint.
type TurnMode int

const (
	TurnStraight TurnMode = iota
	TurnLeft
	TurnRight
)

func (t TurnMode) String() string {
	switch t {
	case TurnStraight:
		return "straight"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "unknown"
	}
}

// DesiredHeading returns the heading in [0,360) from p, in sub-cell
// units, to the center of the target cell. When the two share an x
// coordinate the result is 0 regardless of dy; aircraft recover from this
// once they drift off the vertical line.
func DesiredHeading(p, target math.Point2i, scale int) float64 {
	d := math.Sub2i(math.Scale2i(target, scale), p)
	dx, dy := d[0], d[1]
	if dx == 0 {
		return 0
	}

	// atan is in (-90,90); the quadrant is fixed up below.
	a := math.Degrees(math.Atan(float64(dy) / float64(dx)))
	if dx < 0 {
		a += 180
	} else if dy < 0 {
		a += 360
	}
	return a
}

// ChooseTurn decides which way an aircraft flying straight should turn
// to reach the desired heading. If the two are within rate degrees, no
// turn is needed and TurnStraight is returned.
//
// This is not a true shortest-arc test: when both directions are 180
// degrees it always turns left.
func ChooseTurn(desired, current, rate float64) TurnMode {
	if math.Abs(desired-current) <= rate {
		return TurnStraight
	}
	if (desired > current && desired < current+180) ||
		(desired < math.Mod(current+180, 360) && current >= 180) {
		return TurnRight
	}
	return TurnLeft
}

// TurnStep advances a turn in progress by rate degrees. Once the stepped
// heading is within rate of the desired heading, the desired heading is
// returned along with TurnStraight. With TurnStraight, the current
// heading is snapped to the desired one if they are close enough and
// left alone otherwise.
func TurnStep(desired, current, rate float64, mode TurnMode) (float64, TurnMode) {
	hdg := current
	switch mode {
	case TurnLeft:
		hdg = math.Mod(current-rate, 360)
		if hdg < 0 {
			hdg += 360
		}
	case TurnRight:
		hdg = math.Mod(current+rate, 360)
	}

	if math.Abs(desired-hdg) <= rate {
		return desired, TurnStraight
	}
	return hdg, mode
}
