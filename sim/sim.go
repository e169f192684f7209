// sim/sim.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/airportcontrol/airportcontrol/log"
	"github.com/airportcontrol/airportcontrol/math"
	"github.com/airportcontrol/airportcontrol/nav"
	"github.com/airportcontrol/airportcontrol/util"

	"github.com/brunoga/deep"
	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

const DefaultTickInterval = 50 * time.Millisecond

type Sim struct {
	// Airspace size in grid cells.
	Width, Height int
	// Aircraft whose displayed positions are at most this many cells
	// apart are flagged as conflicting. Zero disables conflict checks.
	ConflictRadius float64

	Aircraft      map[string]*Aircraft
	AircraftTypes map[string]AircraftType
	Runways       map[string]*Runway

	SimTime      time.Duration
	Ticks        int
	TickInterval time.Duration
	Paused       bool

	// conflicts records the other aircraft each aircraft is in conflict
	// with, so that events are only posted when that changes.
	conflicts map[string]string

	workers        int
	lastUpdateTime time.Time
	updateTimeSlop time.Duration

	mu          util.LoggingMutex
	eventStream *EventStream
	lg          *log.Logger
}

// SimConfig holds settings that aren't part of the scenario.
type SimConfig struct {
	// Workers bounds the number of aircraft updated concurrently in a
	// tick; 0 means GOMAXPROCS.
	Workers      int
	TickInterval time.Duration
}

// NewSim creates a sim for the given scenario, which must already have
// passed PostDeserialize.
func NewSim(sc *Scenario, config SimConfig, lg *log.Logger) (*Sim, error) {
	s := &Sim{
		Width:          sc.Width,
		Height:         sc.Height,
		ConflictRadius: sc.ConflictRadius,

		Aircraft:      make(map[string]*Aircraft),
		AircraftTypes: make(map[string]AircraftType),
		Runways:       make(map[string]*Runway),

		TickInterval: util.Select(config.TickInterval > 0, config.TickInterval, DefaultTickInterval),

		conflicts: make(map[string]string),

		workers:        util.Select(config.Workers > 0, config.Workers, runtime.GOMAXPROCS(0)),
		lastUpdateTime: time.Now(),

		eventStream: NewEventStream(lg),
		lg:          lg,
	}

	for name, t := range sc.AircraftTypes {
		s.AircraftTypes[name] = t
	}
	for _, rwy := range sc.Runways {
		s.Runways[rwy.Name] = &rwy
	}

	for _, sa := range sc.Aircraft {
		err := s.AddAircraft(sa.Callsign, sa.Type, nav.Params{
			Position:      sa.Position,
			Heading:       sa.Heading,
			Speed:         sa.Speed,
			TurnRate:      sa.TurnRate,
			ArrivalRadius: sa.ArrivalRadius,
		}, sa.Waypoints)
		if err != nil {
			s.Destroy()
			return nil, fmt.Errorf("%s: %w", sa.Callsign, err)
		}
		if sa.Runway != "" {
			if err := s.AssignLanding(sa.Callsign, sa.Runway); err != nil {
				s.Destroy()
				return nil, fmt.Errorf("%s: %w", sa.Callsign, err)
			}
		}
	}

	lg.Info("created sim", slog.Any("sim", s))

	return s, nil
}

func (s *Sim) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Int("aircraft", len(s.Aircraft)),
		slog.Int("runways", len(s.Runways)),
		slog.Duration("sim_time", s.SimTime),
		slog.Int("ticks", s.Ticks),
		slog.Int("workers", s.workers))
}

func (s *Sim) Destroy() {
	s.eventStream.Destroy()
}

// Subscribe creates a new event subscription for this simulation.
// The caller is responsible for calling Unsubscribe when done.
func (s *Sim) Subscribe() *EventsSubscription {
	return s.eventStream.Subscribe()
}

func (s *Sim) PostEvent(e Event) {
	s.eventStream.Post(e)
}

func (s *Sim) extent() math.Extent2i {
	return math.Extent2i{P1: math.Point2i{s.Width, s.Height}}
}

// AddAircraft adds a new aircraft at the given position, flying toward
// the given waypoints. An empty type selects DefaultAircraftType.
func (s *Sim) AddAircraft(callsign, actype string, p nav.Params, wps []math.Point2i) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	if _, ok := s.Aircraft[callsign]; ok {
		return ErrDuplicateCallsign
	}
	if actype == "" {
		actype = DefaultAircraftType
	}
	if _, ok := s.AircraftTypes[actype]; !ok {
		return ErrUnknownAircraftType
	}
	if !s.extent().Inside(p.Position) {
		return ErrInvalidPosition
	}
	if err := s.checkWaypoints(wps); err != nil {
		return err
	}

	ac := &Aircraft{
		Callsign: callsign,
		Type:     actype,
		Nav:      nav.MakeNav(p),
	}
	ac.Nav.SetWaypoints(wps)
	s.Aircraft[callsign] = ac

	s.lg.Debug("added aircraft", slog.Any("aircraft", ac))

	return nil
}

func (s *Sim) checkWaypoints(wps []math.Point2i) error {
	ext := s.extent()
	for _, wp := range wps {
		if !ext.Inside(wp) {
			return fmt.Errorf("%s: %w", wp, ErrInvalidWaypoint)
		}
	}
	return nil
}

// SetWaypoints replaces an aircraft's flight plan.
func (s *Sim) SetWaypoints(callsign string, wps []math.Point2i) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ac, ok := s.Aircraft[callsign]
	if !ok {
		return ErrNoSuchAircraft
	}
	if err := s.checkWaypoints(wps); err != nil {
		return err
	}

	ac.Nav.SetWaypoints(wps)
	return nil
}

// AppendWaypoint adds a waypoint to the end of an aircraft's flight plan.
func (s *Sim) AppendWaypoint(callsign string, wp math.Point2i) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ac, ok := s.Aircraft[callsign]
	if !ok {
		return ErrNoSuchAircraft
	}
	if err := s.checkWaypoints([]math.Point2i{wp}); err != nil {
		return err
	}

	ac.Nav.AppendWaypoint(wp)
	return nil
}

// AssignLanding hands the aircraft to the named runway.
func (s *Sim) AssignLanding(callsign, runway string) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ac, ok := s.Aircraft[callsign]
	if !ok {
		return ErrNoSuchAircraft
	}
	rwy, ok := s.Runways[runway]
	if !ok {
		return ErrNoSuchRunway
	}

	ac.Nav.SetLandingAuthority(rwy)
	s.eventStream.Post(Event{
		Type:     LandingAssignedEvent,
		Callsign: callsign,
		Position: ac.Nav.DisplayPosition(),
		Runway:   runway,
	})
	return nil
}

func (s *Sim) CancelLanding(callsign string) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ac, ok := s.Aircraft[callsign]
	if !ok {
		return ErrNoSuchAircraft
	}

	ac.Nav.SetLandingAuthority(nil)
	s.eventStream.Post(Event{
		Type:     LandingCanceledEvent,
		Callsign: callsign,
		Position: ac.Nav.DisplayPosition(),
	})
	return nil
}

func (s *Sim) SetTransparency(callsign string, t float64) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ac, ok := s.Aircraft[callsign]
	if !ok {
		return ErrNoSuchAircraft
	}
	ac.Nav.SetTransparency(t)
	return nil
}

// SetAlert sets or clears an aircraft's alert flag directly, e.g. for an
// emergency. Conflict checks may change it again on the next tick.
func (s *Sim) SetAlert(callsign string, alert bool) error {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	ac, ok := s.Aircraft[callsign]
	if !ok {
		return ErrNoSuchAircraft
	}
	ac.Nav.SetAlert(alert)
	return nil
}

func (s *Sim) TogglePause() {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	s.Paused = !s.Paused
	s.lg.Infof("paused: %v", s.Paused)
}

// Update runs as many ticks as fit in the wallclock time elapsed since the
// last call and returns how many were run.
func (s *Sim) Update() int {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	now := time.Now()
	defer func() { s.lastUpdateTime = now }()

	if s.Paused {
		s.updateTimeSlop = 0
		return 0
	}

	elapsed := now.Sub(s.lastUpdateTime) + s.updateTimeSlop
	n := int(elapsed / s.TickInterval)
	if n > 10 && !util.DebuggerIsRunning() {
		s.lg.Warn("unexpected hitch in update rate", slog.Duration("elapsed", elapsed),
			slog.Int("steps", n), slog.Duration("slop", s.updateTimeSlop))
	}
	for range n {
		s.step(s.TickInterval)
	}
	s.updateTimeSlop = elapsed - time.Duration(n)*s.TickInterval

	return n
}

// Step advances every aircraft by a single tick.
func (s *Sim) Step(delta time.Duration) {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	s.step(delta)
}

func (s *Sim) step(delta time.Duration) {
	s.SimTime += delta
	s.Ticks++

	// Aircraft don't interact while moving, so they can be updated in
	// parallel. Events are posted afterward in callsign order so the
	// stream is the same regardless of the number of workers.
	callsigns := util.SortedMapKeys(s.Aircraft)
	results := make([]nav.UpdateResult, len(callsigns))

	var eg errgroup.Group
	eg.SetLimit(s.workers)
	for i, callsign := range callsigns {
		ac := s.Aircraft[callsign]
		eg.Go(func() error {
			results[i] = ac.Nav.Update(callsign, delta, s.Width, s.Height)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		s.lg.Errorf("aircraft update: %v", err)
	}

	for i, callsign := range callsigns {
		ac := s.Aircraft[callsign]
		r := results[i]

		if r.Passed != nil {
			s.eventStream.Post(Event{
				Type:     WaypointReachedEvent,
				Callsign: callsign,
				Position: *r.Passed,
			})
			if len(ac.Nav.Waypoints) == 0 {
				s.eventStream.Post(Event{
					Type:     ArrivedEvent,
					Callsign: callsign,
					Position: ac.Nav.DisplayPosition(),
				})
			}
		}
		if r.Bounce != nav.EdgeNone {
			s.eventStream.Post(Event{
				Type:     BoundaryEvent,
				Callsign: callsign,
				Position: ac.Nav.DisplayPosition(),
				Edge:     r.Bounce,
			})
		}

		s.updateLanding(ac)
	}

	s.updateConflicts()
}

// updateLanding fades out aircraft that are close enough to their
// assigned runway and removes them once they are invisible.
func (s *Sim) updateLanding(ac *Aircraft) {
	rwy, ok := ac.Nav.LandingAuthority().(*Runway)
	if !ok {
		return
	}

	p := ac.Nav.DisplayPosition()
	if math.Distance2i(p, rwy.Position) > float64(ac.Nav.LandingPrecision) {
		return
	}

	ac.Nav.SetTransparency(ac.Nav.Transparency - LandingFadeRate)
	if ac.Nav.Transparency > 0 {
		return
	}

	delete(s.Aircraft, ac.Callsign)
	delete(s.conflicts, ac.Callsign)
	s.lg.Info("aircraft landed", slog.String("callsign", ac.Callsign), slog.String("runway", rwy.Name))
	s.eventStream.Post(Event{
		Type:     LandedEvent,
		Callsign: ac.Callsign,
		Position: p,
		Runway:   rwy.Name,
	})
}

// StateUpdate is a copy of the sim's state that can be used without
// holding the sim's lock.
type StateUpdate struct {
	Width, Height int
	SimTime       time.Duration
	Ticks         int
	Paused        bool
	Aircraft      map[string]AircraftState
	AircraftTypes map[string]AircraftType
	Runways       map[string]Runway
}

type AircraftState struct {
	Callsign string
	Type     string
	nav.Snapshot
}

func (s *Sim) GetStateUpdate() StateUpdate {
	s.mu.Lock(s.lg)
	defer s.mu.Unlock(s.lg)

	update := StateUpdate{
		Width:         s.Width,
		Height:        s.Height,
		SimTime:       s.SimTime,
		Ticks:         s.Ticks,
		Paused:        s.Paused,
		Aircraft:      make(map[string]AircraftState, len(s.Aircraft)),
		AircraftTypes: s.AircraftTypes,
		Runways:       make(map[string]Runway, len(s.Runways)),
	}
	for callsign, ac := range s.Aircraft {
		update.Aircraft[callsign] = AircraftState{
			Callsign: callsign,
			Type:     ac.Type,
			Snapshot: ac.Nav.TakeSnapshot(),
		}
	}
	for name, rwy := range s.Runways {
		update.Runways[name] = *rwy
	}

	// The types table is shared with the sim; copy everything so the
	// caller can't modify the sim through the update.
	return deep.MustCopy(update)
}

// DumpState writes a human-readable dump of the sim's state.
func (s *Sim) DumpState(w io.Writer) {
	godump.Fdump(w, s.GetStateUpdate())
}
