// sim/conflict.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"log/slog"

	"github.com/airportcontrol/airportcontrol/math"
	"github.com/airportcontrol/airportcontrol/util"
)

// findConflicts returns, for each aircraft within radius cells of
// another, the first such aircraft in callsign order.
func findConflicts(aircraft map[string]*Aircraft, radius float64) map[string]string {
	conflicts := make(map[string]string)
	if radius <= 0 {
		return conflicts
	}

	callsigns := util.SortedMapKeys(aircraft)
	for i, a := range callsigns {
		pa := aircraft[a].Nav.DisplayPosition()
		for _, b := range callsigns[i+1:] {
			pb := aircraft[b].Nav.DisplayPosition()
			if math.Distance2i(pa, pb) > radius {
				continue
			}
			if _, ok := conflicts[a]; !ok {
				conflicts[a] = b
			}
			if _, ok := conflicts[b]; !ok {
				conflicts[b] = a
			}
		}
	}
	return conflicts
}

// updateConflicts raises alerts for aircraft that have just come into
// conflict and clears them for ones that have separated. Alerts that were
// set some other way are left alone.
func (s *Sim) updateConflicts() {
	if s.ConflictRadius <= 0 {
		return
	}

	conflicts := findConflicts(s.Aircraft, s.ConflictRadius)

	for _, callsign := range util.SortedMapKeys(s.Aircraft) {
		ac := s.Aircraft[callsign]
		other, now := conflicts[callsign]
		_, was := s.conflicts[callsign]

		if now && !was {
			ac.Nav.SetAlert(true)
			s.lg.Info("conflict", slog.String("callsign", callsign), slog.String("other", other))
			s.eventStream.Post(Event{
				Type:     AlertEvent,
				Callsign: callsign,
				Position: ac.Nav.DisplayPosition(),
				Other:    other,
			})
		} else if was && !now {
			ac.Nav.SetAlert(false)
			s.eventStream.Post(Event{
				Type:     AlertClearedEvent,
				Callsign: callsign,
				Position: ac.Nav.DisplayPosition(),
			})
		}
	}

	s.conflicts = conflicts
}
