// sim/scenario.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/airportcontrol/airportcontrol/math"
	"github.com/airportcontrol/airportcontrol/nav"
	"github.com/airportcontrol/airportcontrol/util"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 40
	DefaultHeight = 25
)

// Scenario is the initial layout of the airspace, as read from a JSON or
// YAML file. Positions and waypoints are in grid cells.
type Scenario struct {
	Name           string                  `json:"name" yaml:"name"`
	Width          int                     `json:"width" yaml:"width"`
	Height         int                     `json:"height" yaml:"height"`
	ConflictRadius float64                 `json:"conflict_radius" yaml:"conflict_radius"`
	AircraftTypes  map[string]AircraftType `json:"types" yaml:"types"`
	Runways        []Runway                `json:"runways" yaml:"runways"`
	Aircraft       []ScenarioAircraft      `json:"aircraft" yaml:"aircraft"`
}

type ScenarioAircraft struct {
	Callsign      string         `json:"callsign" yaml:"callsign"`
	Type          string         `json:"type" yaml:"type"`
	Position      math.Point2i   `json:"position" yaml:"position"`
	Heading       float64        `json:"heading" yaml:"heading"`
	Speed         float64        `json:"speed" yaml:"speed"`
	TurnRate      float64        `json:"turn_rate" yaml:"turn_rate"`
	ArrivalRadius float64        `json:"arrival_radius" yaml:"arrival_radius"`
	Waypoints     []math.Point2i `json:"waypoints" yaml:"waypoints"`
	Runway        string         `json:"runway" yaml:"runway"`
}

// PostDeserialize fills in defaults and checks the scenario for
// consistency; problems are reported to e.
func (s *Scenario) PostDeserialize(e *util.ErrorLogger) {
	if s.Width == 0 {
		s.Width = DefaultWidth
	} else if s.Width < 0 {
		e.ErrorString("\"width\" must be positive")
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	} else if s.Height < 0 {
		e.ErrorString("\"height\" must be positive")
	}
	if s.ConflictRadius < 0 {
		e.ErrorString("\"conflict_radius\" cannot be negative")
	}

	if s.AircraftTypes == nil {
		s.AircraftTypes = make(map[string]AircraftType)
	}
	for name, t := range defaultAircraftTypes() {
		if _, ok := s.AircraftTypes[name]; !ok {
			s.AircraftTypes[name] = t
		}
	}
	for _, name := range util.SortedMapKeys(s.AircraftTypes) {
		t := s.AircraftTypes[name]
		e.Push("Aircraft type " + name)
		if t.Name == "" {
			t.Name = name
		}
		if t.AssetKey == "" {
			t.AssetKey = name
		}
		if t.Glyph == "" {
			e.ErrorString("\"glyph\" must be specified")
		}
		s.AircraftTypes[name] = t
		e.Pop()
	}

	ext := math.Extent2i{P1: math.Point2i{s.Width, s.Height}}

	runways := make(map[string]bool)
	for _, rwy := range s.Runways {
		e.Push("Runway " + rwy.Name)
		if rwy.Name == "" {
			e.ErrorString("\"name\" must be specified")
		} else if runways[rwy.Name] {
			e.ErrorString("runway redefined")
		}
		runways[rwy.Name] = true
		if !ext.Inside(rwy.Position) {
			e.ErrorString("position %s is outside the airspace", rwy.Position)
		}
		if rwy.Precision <= 0 {
			e.ErrorString("\"precision\" must be positive")
		}
		e.Pop()
	}

	callsigns := make(map[string]bool)
	for i := range s.Aircraft {
		ac := &s.Aircraft[i]
		e.Push("Aircraft " + ac.Callsign)

		if ac.Callsign == "" {
			e.ErrorString("\"callsign\" must be specified")
		} else if callsigns[ac.Callsign] {
			e.ErrorString("callsign redefined")
		}
		callsigns[ac.Callsign] = true

		if ac.Type == "" {
			ac.Type = DefaultAircraftType
		} else if _, ok := s.AircraftTypes[ac.Type]; !ok {
			e.ErrorString("%s: unknown aircraft type", ac.Type)
		}
		if !ext.Inside(ac.Position) {
			e.ErrorString("position %s is outside the airspace", ac.Position)
		}
		if ac.Speed < nav.MinSpeed {
			ac.Speed = nav.MinSpeed
		}
		if ac.TurnRate < 0 {
			e.ErrorString("\"turn_rate\" cannot be negative")
		}
		if ac.ArrivalRadius < 0 {
			e.ErrorString("\"arrival_radius\" cannot be negative")
		}
		for _, wp := range ac.Waypoints {
			if !ext.Inside(wp) {
				e.ErrorString("waypoint %s is outside the airspace", wp)
			}
		}
		if ac.Runway != "" && !runways[ac.Runway] {
			e.ErrorString("%s: unknown runway", ac.Runway)
		}

		e.Pop()
	}
}

// ParseScenario decodes a scenario; the format is chosen by the file
// extension of path. nil is returned if there were any errors.
func ParseScenario(path string, contents []byte, e *util.ErrorLogger) *Scenario {
	e.Push("File " + path)
	defer e.Pop()

	var s Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := util.UnmarshalJSONBytes(contents, &s); err != nil {
			e.Error(err)
			return nil
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(contents, &s); err != nil {
			e.Error(err)
			return nil
		}
	default:
		e.Error(ErrUnknownScenarioFormat)
		return nil
	}

	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s.PostDeserialize(e)
	if e.HaveErrors() {
		return nil
	}
	return &s
}

// LoadScenario reads and parses the scenario file at path.
func LoadScenario(path string, e *util.ErrorLogger) *Scenario {
	contents, err := os.ReadFile(path)
	if err != nil {
		e.Error(err)
		return nil
	}
	return ParseScenario(path, contents, e)
}

//go:embed scenarios/default.yaml
var defaultScenario []byte

// DefaultScenario returns the built-in scenario used when none is given.
func DefaultScenario() *Scenario {
	var e util.ErrorLogger
	s := ParseScenario("default.yaml", defaultScenario, &e)
	if s == nil {
		panic("built-in scenario is invalid: " + e.String())
	}
	return s
}
