// nav/update.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"time"

	"github.com/airportcontrol/airportcontrol/math"
)

// Edge identifies the side of the airspace an aircraft bounced off.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
	EdgeTop
)

func (e Edge) String() string {
	return [...]string{"none", "right", "bottom", "left", "top"}[e]
}

// UpdateResult summarizes what happened during a single Update so that
// callers can raise events without inspecting the Nav's internals.
type UpdateResult struct {
	// Waypoint that was reached, if any.
	Passed *math.Point2i
	// Bounce is the airspace edge the aircraft was turned back from.
	Bounce Edge
}

// Update advances the aircraft by a single tick inside an airspace that
// is width by height grid cells. The elapsed time is only used for
// logging; aircraft move a fixed distance each tick.
func (nav *Nav) Update(callsign string, delta time.Duration, width, height int) UpdateResult {
	NavLog(callsign, NavLogState, "dt=%s pos=%s hdg=%.1f turn=%s wps=%d", delta,
		nav.FlightState.Position, nav.FlightState.Heading, nav.Turn, len(nav.Waypoints))

	nav.updateHeading(callsign)

	p := nav.FlightState.Position
	p = math.Add2i(p, nav.displacement())

	var result UpdateResult
	if wp, ok := nav.CurrentWaypoint(); ok {
		if math.Distance2i(p, math.Scale2i(wp, Scale)) < nav.FlightState.ArrivalRadius*Scale {
			nav.Waypoints = nav.Waypoints[1:]
			nav.Turn = TurnStraight
			result.Passed = &wp
			NavLog(callsign, NavLogWaypoint, "reached %s, %d remaining", wp, len(nav.Waypoints))
		}
	}

	// Bounce off the walls. The position isn't clamped, so the aircraft
	// may be outside for a tick before it flies back in.
	switch {
	case p[0] > width*Scale:
		result.Bounce = EdgeRight
	case p[1] > height*Scale:
		result.Bounce = EdgeBottom
	case p[0] < 0:
		result.Bounce = EdgeLeft
	case p[1] < 0:
		result.Bounce = EdgeTop
	}
	if result.Bounce != EdgeNone {
		nav.FlightState.Heading += 180
		NavLog(callsign, NavLogBoundary, "%s edge at %s, heading now %.1f", result.Bounce, p,
			math.NormalizeHeading(nav.FlightState.Heading))
	}

	nav.FlightState.Heading = math.NormalizeHeading(nav.FlightState.Heading)
	nav.FlightState.Position = p

	return result
}

func (nav *Nav) updateHeading(callsign string) {
	wp, ok := nav.CurrentWaypoint()
	if !ok {
		return
	}

	fs := &nav.FlightState
	desired := DesiredHeading(fs.Position, wp, Scale)

	if nav.Turn == TurnStraight {
		nav.Turn = ChooseTurn(desired, fs.Heading, fs.TurnRate)
	}
	prev := fs.Heading
	fs.Heading, nav.Turn = TurnStep(desired, fs.Heading, fs.TurnRate, nav.Turn)

	NavLog(callsign, NavLogHeading, "desired=%.1f heading %.1f -> %.1f turn=%s",
		desired, prev, fs.Heading, nav.Turn)
}

// displacement returns this tick's movement in sub-cells; fractional
// parts are dropped.
func (nav *Nav) displacement() math.Point2i {
	v := math.HeadingVector(nav.FlightState.Heading)
	return math.Point2i{
		int(v[0] * nav.FlightState.Speed),
		int(v[1] * nav.FlightState.Speed),
	}
}
