// sim/errors.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
)

var (
	ErrDuplicateCallsign     = errors.New("Duplicate callsign")
	ErrInvalidWaypoint       = errors.New("Waypoint is outside the airspace")
	ErrInvalidPosition       = errors.New("Position is outside the airspace")
	ErrNoSuchAircraft        = errors.New("No such aircraft")
	ErrNoSuchRunway          = errors.New("No such runway")
	ErrUnknownAircraftType   = errors.New("Unknown aircraft type")
	ErrUnknownScenarioFormat = errors.New("Unknown scenario file format")
)
