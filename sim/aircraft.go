// sim/aircraft.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"

	"github.com/airportcontrol/airportcontrol/math"
	"github.com/airportcontrol/airportcontrol/nav"
)

type Aircraft struct {
	Callsign string
	// Type is a key into the sim's AircraftTypes table.
	Type string

	// State related to navigation.
	Nav *nav.Nav
}

func (ac *Aircraft) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("callsign", ac.Callsign),
		slog.String("type", ac.Type),
		slog.Any("nav", ac.Nav))
}

// AircraftType describes how a kind of aircraft is drawn. Aircraft of all
// types fly the same way.
type AircraftType struct {
	Name     string `json:"name" yaml:"name"`
	AssetKey string `json:"asset" yaml:"asset"`
	Glyph    string `json:"glyph" yaml:"glyph"`
}

const DefaultAircraftType = "airplane"

func defaultAircraftTypes() map[string]AircraftType {
	return map[string]AircraftType{
		DefaultAircraftType: {Name: "Airplane", AssetKey: "airplane", Glyph: "A"},
	}
}

// Runway is a landing authority. Aircraft assigned to it fade out once
// they are within Precision cells of its position and are removed when
// they have faded completely.
type Runway struct {
	Name      string       `json:"name" yaml:"name"`
	Position  math.Point2i `json:"position" yaml:"position"`
	Precision int          `json:"precision" yaml:"precision"`
}

func (r *Runway) LandingPrecision() int {
	return r.Precision
}

// LandingFadeRate is how much an aircraft's transparency drops each tick
// while it touches down.
const LandingFadeRate = 0.125
