// sim/eventstream.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/airportcontrol/airportcontrol/log"
	"github.com/airportcontrol/airportcontrol/math"
	"github.com/airportcontrol/airportcontrol/nav"
)

// EventStream provides a basic pub/sub event interface that allows any
// part of the system to post an event to the stream and other parts to
// subscribe and receive messages from the stream. The sim posts aircraft
// events to it and renderers and game rules consume them.
type EventStream struct {
	mu            sync.Mutex
	events        []Event
	subscriptions map[*EventsSubscription]interface{}
	lastPost      time.Time
	warnedLong    bool
	done          chan struct{}
	lg            *log.Logger
}

type EventsSubscription struct {
	stream *EventStream
	// offset is offset in the EventStream stream array up to which the
	// subscriber has consumed events so far.
	offset      int
	source      string
	lastGet     time.Time
	warnedNoGet bool
}

func (e *EventsSubscription) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("offset", e.offset),
		slog.String("source", e.source),
		slog.Time("last_get", e.lastGet))
}

func NewEventStream(lg *log.Logger) *EventStream {
	es := &EventStream{
		subscriptions: make(map[*EventsSubscription]interface{}),
		lastPost:      time.Now(),
		done:          make(chan struct{}),
		lg:            lg,
	}
	go es.monitor()
	return es
}

// Subscribe registers a new subscriber to the stream. Only events posted
// after the call are returned by the subscription's Get method.
func (e *EventStream) Subscribe() *EventsSubscription {
	// Record the subscriber's callsite, so that we can more easily debug
	// subscribers that aren't consuming events.
	_, fn, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", fn, line)

	e.mu.Lock()
	defer e.mu.Unlock()

	sub := &EventsSubscription{
		stream:  e,
		offset:  len(e.events),
		source:  source,
		lastGet: time.Now(),
	}
	e.subscriptions[sub] = nil
	return sub
}

func (e *EventStream) monitor() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-ticker.C:
		}

		e.mu.Lock()

		e.compact()

		if len(e.events) > 1000 && !e.warnedLong {
			// It's likely that one of the subscribers is out to lunch if
			// the stream has grown this long.
			e.lg.Warn("Long EventStream", slog.Int("length", len(e.events)),
				log.AnyPointerSlice("subscriptions", slices.Collect(maps.Keys(e.subscriptions))))
			e.warnedLong = true
		}

		// Only complain about idle subscribers while events are being
		// posted; a paused sim posts nothing.
		if time.Since(e.lastPost) < 5*time.Second {
			for sub := range e.subscriptions {
				if d := time.Since(sub.lastGet); d > 10*time.Second && !sub.warnedNoGet {
					e.lg.Warn("Subscriber has not called Get() recently",
						slog.Duration("duration", d), slog.Any("subscriber", sub))
					sub.warnedNoGet = true
				}
			}
		}

		e.mu.Unlock()
	}
}

// Unsubscribe removes a subscriber from the subscriber list
func (e *EventsSubscription) Unsubscribe() {
	e.stream.mu.Lock()
	defer e.stream.mu.Unlock()

	if _, ok := e.stream.subscriptions[e]; !ok {
		e.stream.lg.Errorf("Attempted to unsubscribe invalid subscription: %+v", e)
	}
	delete(e.stream.subscriptions, e)
	e.stream = nil
}

// Post adds an event to the event stream.
func (e *EventStream) Post(event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lg.Debug("posted event", slog.Any("event", event))

	// Ignore the event if no one's paying attention.
	if len(e.subscriptions) > 0 {
		e.lastPost = time.Now()
		e.events = append(e.events, event)
	}
}

// Get returns all of the events from the stream since the last time Get
// was called on the subscription.
func (e *EventsSubscription) Get() []Event {
	e.stream.mu.Lock()
	defer e.stream.mu.Unlock()

	if _, ok := e.stream.subscriptions[e]; !ok {
		e.stream.lg.Errorf("Attempted to get with unregistered subscription: %+v", e)
		return nil
	}

	events := slices.Clone(e.stream.events[e.offset:])
	e.offset = len(e.stream.events)
	e.lastGet = time.Now()
	e.warnedNoGet = false

	return events
}

func (e *EventStream) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	select {
	case <-e.done:
		// already destroyed
	default:
		close(e.done)
	}
	clear(e.subscriptions)
}

// compact reclaims storage for events that all subscribers have seen; it
// is called periodically so that EventStream memory usage doesn't grow
// without bound.
func (e *EventStream) compact() {
	minOffset := len(e.events)
	for sub := range e.subscriptions {
		if sub.offset < minOffset {
			minOffset = sub.offset
		}
	}

	if minOffset > cap(e.events)/2 {
		n := len(e.events) - minOffset

		copy(e.events, e.events[minOffset:])
		e.events = e.events[:n]

		for sub := range e.subscriptions {
			sub.offset -= minOffset
		}

		e.warnedLong = false // reset this after a successful compact.
	}
}

// implements slog.LogValuer
func (e *EventStream) LogValue() slog.Value {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := []slog.Attr{slog.Int("len", len(e.events)), slog.Int("cap", cap(e.events))}
	if len(e.events) > 0 {
		items = append(items, slog.Any("last_element", e.events[len(e.events)-1]))
	}
	items = append(items, log.AnyPointerSlice("subscriptions", slices.Collect(maps.Keys(e.subscriptions))))
	return slog.GroupValue(items...)
}

///////////////////////////////////////////////////////////////////////////

type EventType int

const (
	WaypointReachedEvent EventType = iota
	ArrivedEvent
	BoundaryEvent
	AlertEvent
	AlertClearedEvent
	LandingAssignedEvent
	LandingCanceledEvent
	LandedEvent
	StatusMessageEvent
	NumEventTypes
)

func (t EventType) String() string {
	return []string{"WaypointReached", "Arrived", "Boundary", "Alert", "AlertCleared",
		"LandingAssigned", "LandingCanceled", "Landed", "StatusMessage"}[t]
}

type Event struct {
	Type     EventType
	Callsign string
	// Position is the aircraft's displayed position when the event
	// happened, or the waypoint for WaypointReachedEvent.
	Position math.Point2i
	Edge     nav.Edge // BoundaryEvent
	Other    string   // AlertEvent: the conflicting aircraft
	Runway   string   // LandingAssignedEvent, LandedEvent
	Message  string   // StatusMessageEvent
}

func (e *Event) String() string {
	switch e.Type {
	case BoundaryEvent:
		return fmt.Sprintf("%s: %s %s edge at %s", e.Type, e.Callsign, e.Edge, e.Position)
	case AlertEvent, AlertClearedEvent:
		return fmt.Sprintf("%s: %s/%s at %s", e.Type, e.Callsign, e.Other, e.Position)
	case LandingAssignedEvent, LandedEvent:
		return fmt.Sprintf("%s: %s runway %s", e.Type, e.Callsign, e.Runway)
	case StatusMessageEvent:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	default:
		return fmt.Sprintf("%s: %s at %s", e.Type, e.Callsign, e.Position)
	}
}

func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("type", e.Type.String())}
	if e.Callsign != "" {
		attrs = append(attrs, slog.String("callsign", e.Callsign), slog.String("position", e.Position.String()))
	}
	if e.Edge != nav.EdgeNone {
		attrs = append(attrs, slog.String("edge", e.Edge.String()))
	}
	if e.Other != "" {
		attrs = append(attrs, slog.String("other", e.Other))
	}
	if e.Runway != "" {
		attrs = append(attrs, slog.String("runway", e.Runway))
	}
	if e.Message != "" {
		attrs = append(attrs, slog.String("message", e.Message))
	}
	return slog.GroupValue(attrs...)
}
