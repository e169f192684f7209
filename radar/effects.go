// radar/effects.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"cmp"
	"slices"
	"time"

	"github.com/airportcontrol/airportcontrol/math"
	"github.com/airportcontrol/airportcontrol/sim"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type EffectKind int

const (
	AlertEffect EffectKind = iota
	BoundaryEffect
	LandedEffect
)

func (k EffectKind) String() string {
	return [...]string{"alert", "boundary", "landed"}[k]
}

// Effect is a short-lived decoration drawn on the scope in response to a
// sim event.
type Effect struct {
	Kind     EffectKind
	Callsign string
	Position math.Point2i
}

type effectKey struct {
	kind     EffectKind
	callsign string
}

// Effects tracks the visual effects that are currently active. Each one
// disappears after a fixed lifetime unless the event that triggered it
// is posted again.
type Effects struct {
	lru *expirable.LRU[effectKey, Effect]
}

const maxEffects = 256

func NewEffects(lifetime time.Duration) *Effects {
	return &Effects{lru: expirable.NewLRU[effectKey, Effect](maxEffects, nil, lifetime)}
}

// Process starts and stops effects according to the given events.
func (e *Effects) Process(events []sim.Event) {
	for _, ev := range events {
		switch ev.Type {
		case sim.AlertEvent:
			e.add(AlertEffect, ev)
		case sim.AlertClearedEvent:
			e.lru.Remove(effectKey{AlertEffect, ev.Callsign})
		case sim.BoundaryEvent:
			e.add(BoundaryEffect, ev)
		case sim.LandedEvent:
			e.lru.Remove(effectKey{AlertEffect, ev.Callsign})
			e.add(LandedEffect, ev)
		}
	}
}

func (e *Effects) add(kind EffectKind, ev sim.Event) {
	e.lru.Add(effectKey{kind, ev.Callsign}, Effect{Kind: kind, Callsign: ev.Callsign, Position: ev.Position})
}

func (e *Effects) Get(kind EffectKind, callsign string) (Effect, bool) {
	return e.lru.Get(effectKey{kind, callsign})
}

// Active returns the live effects ordered by kind and then callsign.
// Entries that have expired but not yet been purged are skipped.
func (e *Effects) Active() []Effect {
	var effects []Effect
	for _, k := range e.lru.Keys() {
		if eff, ok := e.lru.Peek(k); ok {
			effects = append(effects, eff)
		}
	}
	slices.SortFunc(effects, func(a, b Effect) int {
		return cmp.Or(cmp.Compare(a.Kind, b.Kind), cmp.Compare(a.Callsign, b.Callsign))
	})
	return effects
}

func (e *Effects) Len() int {
	return len(e.Active())
}
