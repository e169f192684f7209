// nav/nav.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/airportcontrol/airportcontrol/math"

	"github.com/brunoga/deep"
)

const (
	// Scale is the number of internal sub-cells per displayed grid cell.
	Scale = 20

	// MinSpeed is the slowest an aircraft may fly, in sub-cells per tick.
	MinSpeed = 3.0

	DefaultTurnRate      = 2.0 // degrees per tick
	DefaultArrivalRadius = 1.0 // cells

	// Landing precision before any landing authority has been assigned
	// and after one has been cleared.
	InitialLandingPrecision = 10
	ClearedLandingPrecision = 1
)

// Nav holds one aircraft's kinematic and navigation state. It is not
// safe for concurrent use; callers must serialize flight plan changes
// with calls to Update.
type Nav struct {
	FlightState FlightState
	Turn        TurnMode

	// Waypoints are grid cells; the first one is the current target.
	Waypoints []math.Point2i

	LandingPrecision int
	Transparency     float64

	landing LandingAuthority
	alert   bool
}

type FlightState struct {
	Position      math.Point2i // sub-cells
	Heading       float64      // degrees, [0,360)
	Speed         float64      // sub-cells per tick
	TurnRate      float64      // degrees per tick
	ArrivalRadius float64      // cells
}

func (fs *FlightState) Summary() string {
	return fmt.Sprintf("position %s heading %03d speed %.1f", fs.Position, int(fs.Heading), fs.Speed)
}

// Params specifies a new aircraft. Position is in grid cells.
type Params struct {
	Position      math.Point2i
	Heading       float64
	Speed         float64
	TurnRate      float64
	ArrivalRadius float64
}

// MakeNav returns a Nav for an aircraft flying straight with no
// waypoints. The speed is raised to MinSpeed if needed and zero values
// for the turn rate and arrival radius are replaced with defaults.
func MakeNav(p Params) *Nav {
	if p.TurnRate <= 0 {
		p.TurnRate = DefaultTurnRate
	}
	if p.ArrivalRadius <= 0 {
		p.ArrivalRadius = DefaultArrivalRadius
	}

	return &Nav{
		FlightState: FlightState{
			Position:      math.Scale2i(p.Position, Scale),
			Heading:       math.NormalizeHeading(p.Heading),
			Speed:         max(p.Speed, MinSpeed),
			TurnRate:      p.TurnRate,
			ArrivalRadius: p.ArrivalRadius,
		},
		LandingPrecision: InitialLandingPrecision,
		Transparency:     1,
	}
}

// DisplayPosition returns the aircraft's position in grid cells.
func (nav *Nav) DisplayPosition() math.Point2i {
	return math.Div2i(nav.FlightState.Position, Scale)
}

func (nav *Nav) Heading() float64 {
	return nav.FlightState.Heading
}

// SetWaypoints replaces the flight plan. The slice is copied. A turn in
// progress is not cancelled; it carries on toward the new target.
func (nav *Nav) SetWaypoints(wps []math.Point2i) {
	nav.Waypoints = slices.Clone(wps)
}

// AppendWaypoint adds a waypoint to the end of the flight plan.
func (nav *Nav) AppendWaypoint(wp math.Point2i) {
	nav.Waypoints = append(nav.Waypoints, wp)
}

// GetWaypoints returns a copy of the remaining flight plan.
func (nav *Nav) GetWaypoints() []math.Point2i {
	return slices.Clone(nav.Waypoints)
}

// CurrentWaypoint returns the waypoint the aircraft is heading toward.
func (nav *Nav) CurrentWaypoint() (math.Point2i, bool) {
	if len(nav.Waypoints) == 0 {
		return math.Point2i{}, false
	}
	return nav.Waypoints[0], true
}

// Alert is the collision/emergency visual flag. The navigator never sets
// it itself; game rules do, and renderers key effects off of it.
func (nav *Nav) Alert() bool {
	return nav.alert
}

func (nav *Nav) SetAlert(a bool) {
	nav.alert = a
}

// Snapshot is a self-contained copy of a Nav's state for renderers and
// game rules that must not alias the live aircraft.
type Snapshot struct {
	FlightState      FlightState
	DisplayPosition  math.Point2i
	Turn             TurnMode
	Waypoints        []math.Point2i
	LandingPrecision int
	Transparency     float64
	Landing          bool
	Alert            bool
}

func (nav *Nav) TakeSnapshot() Snapshot {
	return deep.MustCopy(Snapshot{
		FlightState:      nav.FlightState,
		DisplayPosition:  nav.DisplayPosition(),
		Turn:             nav.Turn,
		Waypoints:        nav.Waypoints,
		LandingPrecision: nav.LandingPrecision,
		Transparency:     nav.Transparency,
		Landing:          nav.landing != nil,
		Alert:            nav.alert,
	})
}

func (nav *Nav) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("position", nav.FlightState.Position.String()),
		slog.Float64("heading", nav.FlightState.Heading),
		slog.String("turn", nav.Turn.String()),
		slog.Int("waypoints", len(nav.Waypoints)),
		slog.Int("landing_precision", nav.LandingPrecision))
}
