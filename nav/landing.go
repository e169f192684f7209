// nav/landing.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/airportcontrol/airportcontrol/math"
)

// LandingAuthority is implemented by runways and other landing devices
// that can claim an aircraft.
type LandingAuthority interface {
	LandingPrecision() int
}

// SetLandingAuthority assigns the aircraft to a landing authority and
// takes on its landing precision; passing nil cancels the landing, which
// resets the precision and makes the aircraft fully opaque again.
func (nav *Nav) SetLandingAuthority(a LandingAuthority) {
	nav.landing = a
	if a != nil {
		nav.LandingPrecision = a.LandingPrecision()
	} else {
		nav.LandingPrecision = ClearedLandingPrecision
		nav.Transparency = 1
	}
}

func (nav *Nav) LandingAuthority() LandingAuthority {
	return nav.landing
}

// SetTransparency sets the aircraft's opacity, clamped to [0,1]; landing
// authorities fade aircraft out as they touch down.
func (nav *Nav) SetTransparency(t float64) {
	nav.Transparency = math.Clamp(t, 0, 1)
}
