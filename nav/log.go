// nav/log.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

// Available logging categories
const (
	NavLogState    = "state"
	NavLogWaypoint = "waypoint"
	NavLogHeading  = "heading"
	NavLogBoundary = "boundary"
)

var navLogAllCategories = []string{NavLogState, NavLogWaypoint, NavLogHeading, NavLogBoundary}
