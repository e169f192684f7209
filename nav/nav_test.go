// nav/nav_test.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/airportcontrol/airportcontrol/math"
)

const tick = 50 * time.Millisecond

func TestMakeNav(t *testing.T) {
	nav := MakeNav(Params{Position: math.Point2i{2, 3}, Heading: -90, Speed: 4})

	if nav.FlightState.Position != (math.Point2i{2 * Scale, 3 * Scale}) {
		t.Errorf("internal position = %v, expected (40,60)", nav.FlightState.Position)
	}
	if nav.DisplayPosition() != (math.Point2i{2, 3}) {
		t.Errorf("DisplayPosition() = %v, expected (2,3)", nav.DisplayPosition())
	}
	if nav.Heading() != 270 {
		t.Errorf("Heading() = %f, expected 270", nav.Heading())
	}
	if nav.FlightState.TurnRate != DefaultTurnRate || nav.FlightState.ArrivalRadius != DefaultArrivalRadius {
		t.Errorf("defaults not applied: %+v", nav.FlightState)
	}
	if nav.LandingPrecision != InitialLandingPrecision || nav.Transparency != 1 {
		t.Errorf("landing precision %d transparency %f, expected %d and 1", nav.LandingPrecision,
			nav.Transparency, InitialLandingPrecision)
	}
	if nav.Turn != TurnStraight || len(nav.Waypoints) != 0 || nav.Alert() {
		t.Errorf("unexpected initial state %+v", nav)
	}
}

func TestSpeedFloor(t *testing.T) {
	for _, tt := range []struct{ speed, want float64 }{{0, 3}, {1, 3}, {2.99, 3}, {3, 3}, {5, 5}} {
		nav := MakeNav(Params{Speed: tt.speed})
		if nav.FlightState.Speed != tt.want {
			t.Errorf("MakeNav(speed %f) speed = %f, expected %f", tt.speed, nav.FlightState.Speed, tt.want)
		}
	}
}

func TestStraightFlightToWaypoint(t *testing.T) {
	nav := MakeNav(Params{Position: math.Point2i{0, 0}, Heading: 0, Speed: 5, ArrivalRadius: 1})
	nav.SetWaypoints([]math.Point2i{{10, 0}})

	for i := 1; i <= 100; i++ {
		x := nav.FlightState.Position[0]
		r := nav.Update("AC1", tick, 100, 100)

		if nav.Heading() != 0 {
			t.Fatalf("tick %d: heading %f, expected 0", i, nav.Heading())
		}
		if dx := nav.FlightState.Position[0] - x; dx != 5 {
			t.Fatalf("tick %d: moved %d sub-cells, expected 5", i, dx)
		}

		if r.Passed != nil {
			// 185 is the first position closer than one cell (20
			// sub-cells) to (200,0).
			if i != 37 || nav.FlightState.Position != (math.Point2i{185, 0}) {
				t.Errorf("reached waypoint at tick %d position %v; expected tick 37 at (185,0)", i,
					nav.FlightState.Position)
			}
			if *r.Passed != (math.Point2i{10, 0}) || len(nav.Waypoints) != 0 {
				t.Errorf("passed %v with %d waypoints left", *r.Passed, len(nav.Waypoints))
			}
			if d := nav.DisplayPosition(); d != (math.Point2i{9, 0}) {
				t.Errorf("DisplayPosition() = %v, expected (9,0)", d)
			}
			return
		}
	}
	t.Errorf("waypoint never reached")
}

func TestNoWaypointsFliesStraight(t *testing.T) {
	nav := MakeNav(Params{Position: math.Point2i{5, 5}, Heading: 90, Speed: 7})
	for i := 0; i < 5; i++ {
		nav.Update("AC1", tick, 100, 100)
	}
	if nav.FlightState.Position != (math.Point2i{100, 135}) || nav.Heading() != 90 {
		t.Errorf("position %v heading %f; expected (100,135) heading 90", nav.FlightState.Position, nav.Heading())
	}
}

func TestWaypointConsumption(t *testing.T) {
	for _, tt := range []struct{ speed, rate float64 }{{10, 10}, {8, 15}, {6, 20}} {
		nav := MakeNav(Params{Position: math.Point2i{5, 5}, Heading: 0, Speed: tt.speed, TurnRate: tt.rate})
		route := []math.Point2i{{15, 5}, {15, 15}, {5, 15}, {5, 5}}
		nav.SetWaypoints(route)

		var passed []math.Point2i
		for i := 0; i < 1000 && len(nav.Waypoints) > 0; i++ {
			n := len(nav.Waypoints)
			r := nav.Update("AC1", tick, 20, 20)
			if r.Passed != nil {
				passed = append(passed, *r.Passed)
				if len(nav.Waypoints) != n-1 {
					t.Errorf("waypoint count went from %d to %d", n, len(nav.Waypoints))
				}
				if nav.Turn != TurnStraight {
					t.Errorf("turn mode %s right after reaching %v", nav.Turn, *r.Passed)
				}
			} else if len(nav.Waypoints) != n {
				t.Errorf("waypoints changed without a pass")
			}
			if r.Bounce != EdgeNone {
				t.Errorf("speed %f rate %f: unexpected bounce off %s edge", tt.speed, tt.rate, r.Bounce)
			}
		}

		if !slices.Equal(passed, route) {
			t.Errorf("speed %f rate %f: passed %v, expected %v", tt.speed, tt.rate, passed, route)
		}
	}
}

func TestArrivalTurnReset(t *testing.T) {
	// Aircraft is mid-turn when it passes the waypoint.
	nav := MakeNav(Params{Heading: 0, Speed: 5, TurnRate: 2, ArrivalRadius: 3})
	nav.FlightState.Position = math.Point2i{190, 15}
	nav.SetWaypoints([]math.Point2i{{10, 2}, {0, 10}})
	nav.Turn = TurnRight

	r := nav.Update("AC1", tick, 100, 100)
	if r.Passed == nil {
		t.Fatalf("expected to reach waypoint")
	}
	if nav.Turn != TurnStraight {
		t.Errorf("turn = %s after passing a waypoint, expected straight", nav.Turn)
	}
}

func TestBoundaryReflection(t *testing.T) {
	tests := []struct {
		name     string
		pos      math.Point2i
		heading  float64
		wantEdge Edge
		wantHdg  float64
		wantPos  math.Point2i
	}{
		{"right", math.Point2i{201, 100}, 0, EdgeRight, 180, math.Point2i{206, 100}},
		{"bottom", math.Point2i{100, 198}, 90, EdgeBottom, 270, math.Point2i{100, 203}},
		{"left", math.Point2i{2, 100}, 180, EdgeLeft, 0, math.Point2i{-3, 100}},
		{"top", math.Point2i{100, 2}, 270, EdgeTop, 90, math.Point2i{100, -3}},
		// Past both the right and bottom edges, only the right one counts.
		{"corner", math.Point2i{201, 201}, 45, EdgeRight, 225, math.Point2i{204, 204}},
		{"inside", math.Point2i{100, 100}, 0, EdgeNone, 0, math.Point2i{105, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := MakeNav(Params{Heading: tt.heading, Speed: 5})
			nav.FlightState.Position = tt.pos

			r := nav.Update("AC1", tick, 10, 10)
			if r.Bounce != tt.wantEdge {
				t.Errorf("bounced off %s, expected %s", r.Bounce, tt.wantEdge)
			}
			if !near(nav.Heading(), tt.wantHdg) {
				t.Errorf("heading %f, expected %f", nav.Heading(), tt.wantHdg)
			}
			// Not clamped back inside.
			if nav.FlightState.Position != tt.wantPos {
				t.Errorf("position %v, expected %v", nav.FlightState.Position, tt.wantPos)
			}
		})
	}
}

func TestBounceReturnsInside(t *testing.T) {
	nav := MakeNav(Params{Heading: 0, Speed: 5})
	nav.FlightState.Position = math.Point2i{198, 100}

	if r := nav.Update("AC1", tick, 10, 10); r.Bounce != EdgeRight {
		t.Fatalf("expected bounce off right edge, got %s", r.Bounce)
	}
	if r := nav.Update("AC1", tick, 10, 10); r.Bounce != EdgeNone {
		t.Errorf("bounced again off %s edge", r.Bounce)
	}
	if nav.FlightState.Position != (math.Point2i{198, 100}) || nav.Heading() != 180 {
		t.Errorf("position %v heading %f; expected (198,100) heading 180", nav.FlightState.Position, nav.Heading())
	}
}

func TestHeadingAlwaysNormalized(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	const w, h = 30, 20

	for i := 0; i < 50; i++ {
		nav := MakeNav(Params{
			Position: math.Point2i{r.IntN(w), r.IntN(h)},
			Heading:  r.Float64() * 720,
			Speed:    1 + r.Float64()*15,
			TurnRate: 0.5 + r.Float64()*30,
		})
		for range r.IntN(6) {
			nav.AppendWaypoint(math.Point2i{r.IntN(w), r.IntN(h)})
		}

		for j := 0; j < 400; j++ {
			if j%97 == 0 {
				nav.SetWaypoints([]math.Point2i{{r.IntN(w), r.IntN(h)}})
			}
			nav.Update("AC1", tick, w, h)
			if hdg := nav.Heading(); hdg < 0 || hdg >= 360 {
				t.Fatalf("aircraft %d tick %d: heading %f outside [0,360)", i, j, hdg)
			}
		}
	}
}

func TestWaypointsAreCopied(t *testing.T) {
	nav := MakeNav(Params{})
	wps := []math.Point2i{{1, 1}, {2, 2}}
	nav.SetWaypoints(wps)
	wps[0] = math.Point2i{9, 9}

	got := nav.GetWaypoints()
	if got[0] != (math.Point2i{1, 1}) {
		t.Errorf("SetWaypoints aliased caller's slice")
	}
	got[1] = math.Point2i{7, 7}
	if nav.Waypoints[1] != (math.Point2i{2, 2}) {
		t.Errorf("GetWaypoints returned the internal slice")
	}

	if wp, ok := nav.CurrentWaypoint(); !ok || wp != (math.Point2i{1, 1}) {
		t.Errorf("CurrentWaypoint() = %v, %v", wp, ok)
	}
	nav.SetWaypoints(nil)
	if _, ok := nav.CurrentWaypoint(); ok {
		t.Errorf("CurrentWaypoint() reported a waypoint for an empty route")
	}
}

func TestTakeSnapshot(t *testing.T) {
	nav := MakeNav(Params{Position: math.Point2i{3, 4}, Heading: 45, Speed: 6})
	nav.SetWaypoints([]math.Point2i{{1, 1}})
	nav.SetAlert(true)

	snap := nav.TakeSnapshot()
	if snap.DisplayPosition != (math.Point2i{3, 4}) || !snap.Alert || snap.Landing {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	snap.Waypoints[0] = math.Point2i{5, 5}
	if nav.Waypoints[0] != (math.Point2i{1, 1}) {
		t.Errorf("snapshot shares waypoint storage with the Nav")
	}
}
