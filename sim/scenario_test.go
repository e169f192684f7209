// sim/scenario_test.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/airportcontrol/airportcontrol/log"
	"github.com/airportcontrol/airportcontrol/math"
	"github.com/airportcontrol/airportcontrol/nav"
	"github.com/airportcontrol/airportcontrol/util"
)

const testScenarioJSON = `{
  "name": "json test",
  "width": 30,
  "height": 20,
  "conflict_radius": 1.5,
  "types": { "glider": { "glyph": "G" } },
  "runways": [ { "name": "18", "position": [15, 18], "precision": 2 } ],
  "aircraft": [
    { "callsign": "G1", "type": "glider", "position": [1, 2], "heading": 90, "speed": 1,
      "waypoints": [[5, 5], [15, 18]], "runway": "18" },
    { "callsign": "P1", "position": [29, 19], "heading": 270, "speed": 7, "turn_rate": 6,
      "arrival_radius": 2 }
  ]
}`

const testScenarioYAML = `
width: 30
height: 20
conflict_radius: 1.5
types:
  glider:
    glyph: G
runways:
  - name: "18"
    position: [15, 18]
    precision: 2
aircraft:
  - callsign: G1
    type: glider
    position: [1, 2]
    heading: 90
    speed: 1
    waypoints: [[5, 5], [15, 18]]
    runway: "18"
  - callsign: P1
    position: [29, 19]
    heading: 270
    speed: 7
    turn_rate: 6
    arrival_radius: 2
`

func checkTestScenario(t *testing.T, s *Scenario) {
	t.Helper()

	if s.Width != 30 || s.Height != 20 || s.ConflictRadius != 1.5 {
		t.Errorf("airspace %dx%d radius %f", s.Width, s.Height, s.ConflictRadius)
	}
	glider, ok := s.AircraftTypes["glider"]
	if !ok || glider.Name != "glider" || glider.AssetKey != "glider" || glider.Glyph != "G" {
		t.Errorf("glider type = %+v", glider)
	}
	if _, ok := s.AircraftTypes[DefaultAircraftType]; !ok {
		t.Errorf("default aircraft type not added")
	}
	if len(s.Runways) != 1 || s.Runways[0] != (Runway{Name: "18", Position: math.Point2i{15, 18}, Precision: 2}) {
		t.Errorf("runways = %+v", s.Runways)
	}

	if len(s.Aircraft) != 2 {
		t.Fatalf("%d aircraft, expected 2", len(s.Aircraft))
	}
	g, p := s.Aircraft[0], s.Aircraft[1]
	if g.Callsign != "G1" || g.Type != "glider" || g.Position != (math.Point2i{1, 2}) || g.Runway != "18" {
		t.Errorf("G1 = %+v", g)
	}
	if g.Speed != nav.MinSpeed {
		t.Errorf("G1 speed %f, expected it raised to %f", g.Speed, nav.MinSpeed)
	}
	if !slices.Equal(g.Waypoints, []math.Point2i{{5, 5}, {15, 18}}) {
		t.Errorf("G1 waypoints = %v", g.Waypoints)
	}
	if p.Type != DefaultAircraftType || p.Heading != 270 || p.TurnRate != 6 || p.ArrivalRadius != 2 {
		t.Errorf("P1 = %+v", p)
	}
}

func TestParseScenario(t *testing.T) {
	for _, tt := range []struct {
		path, contents string
		name           string
	}{
		{"test.json", testScenarioJSON, "json test"},
		{"test.yaml", testScenarioYAML, "test"},
		{"other.YML", testScenarioYAML, "other"},
	} {
		t.Run(tt.path, func(t *testing.T) {
			var e util.ErrorLogger
			s := ParseScenario(tt.path, []byte(tt.contents), &e)
			if s == nil {
				t.Fatalf("ParseScenario failed: %s", e.String())
			}
			if s.Name != tt.name {
				t.Errorf("name %q, expected %q", s.Name, tt.name)
			}
			checkTestScenario(t, s)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := os.WriteFile(path, []byte(testScenarioJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	var e util.ErrorLogger
	s := LoadScenario(path, &e)
	if s == nil {
		t.Fatalf("LoadScenario failed: %s", e.String())
	}
	checkTestScenario(t, s)

	if LoadScenario(filepath.Join(t.TempDir(), "missing.json"), &e) != nil || !e.HaveErrors() {
		t.Errorf("LoadScenario of a missing file didn't fail")
	}
}

func TestScenarioErrors(t *testing.T) {
	for _, tt := range []struct {
		name, path, contents string
		errs                 []string
	}{
		{"format", "s.txt", "width: 3", []string{"Unknown scenario file format"}},
		{"unknown field", "s.json", `{"widht": 3}`, []string{"widht"}},
		{"bad yaml", "s.yaml", "aircraft: [", []string{"yaml"}},
		{"negative size", "s.yaml", "width: -1\nheight: -2", []string{"\"width\"", "\"height\""}},
		{"type glyph", "s.yaml", "types:\n  blimp: {asset: b}", []string{"Aircraft type blimp: \"glyph\""}},
		{"duplicate callsign", "s.yaml", "aircraft: [{callsign: A}, {callsign: A}]", []string{"Aircraft A: callsign redefined"}},
		{"missing callsign", "s.yaml", "aircraft: [{position: [1, 1]}]", []string{"\"callsign\" must be specified"}},
		{"unknown type", "s.yaml", "aircraft: [{callsign: A, type: blimp}]", []string{"blimp: unknown aircraft type"}},
		{"position", "s.yaml", "width: 10\naircraft: [{callsign: A, position: [11, 0]}]", []string{"position (11,0) is outside"}},
		{"waypoint", "s.yaml", "aircraft: [{callsign: A, waypoints: [[1, 1], [0, -3]]}]", []string{"waypoint (0,-3) is outside"}},
		{"turn rate", "s.yaml", "aircraft: [{callsign: A, turn_rate: -1}]", []string{"\"turn_rate\""}},
		{"unknown runway", "s.yaml", "aircraft: [{callsign: A, runway: \"36\"}]", []string{"36: unknown runway"}},
		{"runway", "s.yaml", "runways: [{name: \"1\", position: [50, 1]}, {name: \"1\", precision: 1}]",
			[]string{"position (50,1) is outside", "\"precision\" must be positive", "runway redefined"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var e util.ErrorLogger
			if s := ParseScenario(tt.path, []byte(tt.contents), &e); s != nil {
				t.Fatalf("ParseScenario succeeded: %+v", s)
			}
			msg := e.String()
			if !strings.HasPrefix(msg, "File "+tt.path+" / ") && !strings.HasPrefix(msg, "File "+tt.path+": ") {
				t.Errorf("error %q doesn't identify the file", msg)
			}
			for _, want := range tt.errs {
				if !strings.Contains(msg, want) {
					t.Errorf("error %q doesn't contain %q", msg, want)
				}
			}
		})
	}
}

func TestDefaultScenario(t *testing.T) {
	s := DefaultScenario()
	if s.Name != "default" || len(s.Aircraft) == 0 {
		t.Fatalf("unexpected default scenario %+v", s)
	}

	sim, err := NewSim(s, SimConfig{}, log.Discard())
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	defer sim.Destroy()

	if len(sim.Aircraft) != len(s.Aircraft) {
		t.Errorf("sim has %d aircraft, scenario %d", len(sim.Aircraft), len(s.Aircraft))
	}
	for _, ac := range sim.Aircraft {
		if _, ok := sim.AircraftTypes[ac.Type]; !ok {
			t.Errorf("%s: type %q missing from the sim's table", ac.Callsign, ac.Type)
		}
	}
}
