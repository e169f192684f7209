// radar/scope.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package radar

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/airportcontrol/airportcontrol/log"
	"github.com/airportcontrol/airportcontrol/math"
	"github.com/airportcontrol/airportcontrol/sim"
	"github.com/airportcontrol/airportcontrol/util"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleBorder   = styleDefault.Foreground(tcell.ColorDarkGray)
	styleAircraft = styleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleFaded    = styleDefault.Foreground(tcell.ColorGreen)
	styleLabel    = styleDefault.Foreground(tcell.ColorSilver)
	styleWaypoint = styleDefault.Foreground(tcell.ColorAqua)
	styleRunway   = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleConflict = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed).Bold(true)
	styleBoundary = styleDefault.Foreground(tcell.ColorOrange)
	styleLanded   = styleDefault.Foreground(tcell.ColorYellow)
	styleStatus   = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// headingGlyphs maps compass directions to arrows; 0 degrees points right
// and headings increase clockwise on the screen.
var headingGlyphs = map[string]rune{
	"E": '→', "SE": '↘', "S": '↓', "SW": '↙', "W": '←', "NW": '↖', "N": '↑', "NE": '↗',
}

func HeadingGlyph(heading float64) rune {
	return headingGlyphs[math.ShortCompass(heading)]
}

// Action is what the caller should do in response to a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionCancelLandings
)

// Scope draws the airspace on a terminal. Each grid cell is one
// character; cells 0 through Width inclusive are inside the border, which
// is followed by a status line.
type Scope struct {
	screen  tcell.Screen
	effects *Effects
	lg      *log.Logger

	// Alerted aircraft alternate between the conflict style and their
	// regular one every BlinkPeriod.
	BlinkPeriod time.Duration
	start       time.Time

	// Most recent status message posted to the sim.
	message string
}

func NewScope(screen tcell.Screen, effects *Effects, lg *log.Logger) *Scope {
	return &Scope{
		screen:      screen,
		effects:     effects,
		lg:          lg,
		BlinkPeriod: 400 * time.Millisecond,
		start:       time.Now(),
	}
}

func (sc *Scope) blinkOn(now time.Time) bool {
	return (now.Sub(sc.start)/sc.BlinkPeriod)%2 == 0
}

// cell returns the screen coordinates of a grid cell.
func cell(p math.Point2i) (int, int) {
	return p[0] + 1, p[1] + 1
}

func (sc *Scope) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		sc.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Draw renders the state to the screen and shows it.
func (sc *Scope) Draw(su sim.StateUpdate, now time.Time) {
	sc.screen.Clear()

	w, h := sc.screen.Size()
	if w < su.Width+3 || h < su.Height+5 {
		sc.drawText(0, 0, styleConflict, "SCREEN TOO SMALL")
		sc.drawText(0, 1, styleDefault, fmt.Sprintf("Resize to at least %d x %d", su.Width+3, su.Height+5))
		sc.screen.Show()
		return
	}

	sc.drawBorder(su.Width+3, su.Height+3)

	for _, name := range util.SortedMapKeys(su.Runways) {
		rwy := su.Runways[name]
		x, y := cell(rwy.Position)
		sc.screen.SetContent(x, y, '=', nil, styleRunway)
		sc.drawText(x+1, y, styleRunway, rwy.Name)
	}

	callsigns := util.SortedMapKeys(su.Aircraft)

	// Waypoints go underneath the aircraft.
	for _, callsign := range callsigns {
		for i, wp := range su.Aircraft[callsign].Waypoints {
			x, y := cell(wp)
			sc.screen.SetContent(x, y, util.Select(i == 0, '+', '·'), nil, styleWaypoint)
		}
	}

	for _, e := range sc.effects.Active() {
		x, y := cell(e.Position)
		switch e.Kind {
		case BoundaryEffect:
			sc.screen.SetContent(x, y, '!', nil, styleBoundary)
		case LandedEffect:
			sc.screen.SetContent(x, y, '*', nil, styleLanded)
		}
	}

	for _, callsign := range callsigns {
		ac := su.Aircraft[callsign]
		x, y := cell(ac.DisplayPosition)

		style := util.Select(ac.Transparency < 0.5, styleFaded, styleAircraft)
		if ac.Alert && sc.blinkOn(now) {
			style = styleConflict
		}
		sc.screen.SetContent(x, y, HeadingGlyph(ac.FlightState.Heading), nil, style)

		label := callsign
		if t, ok := su.AircraftTypes[ac.Type]; ok {
			label = t.Glyph + " " + callsign
		}
		if _, ok := sc.effects.Get(AlertEffect, callsign); ok {
			label += " !"
		}
		// Keep labels inside the border; aircraft may be just outside
		// the airspace for a tick after crossing an edge.
		room := max(0, su.Width+1-x)
		if r := []rune(label); len(r) > room {
			label = string(r[:room])
		}
		sc.drawText(x+1, y, styleLabel, label)
	}

	status := fmt.Sprintf(" t=%.1fs ticks=%d aircraft=%d ", su.SimTime.Seconds(), su.Ticks, len(su.Aircraft))
	if su.Paused {
		status += "PAUSED "
	}
	if sc.message != "" {
		status += sc.message + " "
	}
	sc.drawText(0, su.Height+3, styleStatus, status)
	sc.drawText(0, su.Height+4, styleLabel, "[space] pause  [c] cancel landings  [q/esc] quit")

	sc.screen.Show()
}

func (sc *Scope) drawBorder(w, h int) {
	for x := 1; x < w-1; x++ {
		sc.screen.SetContent(x, 0, tcell.RuneHLine, nil, styleBorder)
		sc.screen.SetContent(x, h-1, tcell.RuneHLine, nil, styleBorder)
	}
	for y := 1; y < h-1; y++ {
		sc.screen.SetContent(0, y, tcell.RuneVLine, nil, styleBorder)
		sc.screen.SetContent(w-1, y, tcell.RuneVLine, nil, styleBorder)
	}
	sc.screen.SetContent(0, 0, tcell.RuneULCorner, nil, styleBorder)
	sc.screen.SetContent(w-1, 0, tcell.RuneURCorner, nil, styleBorder)
	sc.screen.SetContent(0, h-1, tcell.RuneLLCorner, nil, styleBorder)
	sc.screen.SetContent(w-1, h-1, tcell.RuneLRCorner, nil, styleBorder)
}

func (sc *Scope) HandleEvent(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		sc.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return ActionQuit
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return ActionQuit
			case ' ', 'p':
				return ActionPause
			case 'c':
				return ActionCancelLandings
			}
		}
	}
	return ActionNone
}

// processEvents updates the effects and the status message from the
// sim's events.
func (sc *Scope) processEvents(events []sim.Event) {
	sc.effects.Process(events)
	for _, ev := range events {
		if ev.Type == sim.StatusMessageEvent {
			sc.message = ev.Message
		}
	}
}

// cancelLandings revokes every landing clearance and returns how many
// there were.
func cancelLandings(s *sim.Sim, lg *log.Logger) int {
	su := s.GetStateUpdate()
	n := 0
	for _, callsign := range util.SortedMapKeys(su.Aircraft) {
		if !su.Aircraft[callsign].Landing {
			continue
		}
		// The aircraft may have landed since the state was copied.
		if err := s.CancelLanding(callsign); err != nil {
			lg.Warn("cancel landing", slog.String("callsign", callsign), slog.Any("error", err))
			continue
		}
		n++
	}
	s.PostEvent(sim.Event{Type: sim.StatusMessageEvent, Message: fmt.Sprintf("%d landing clearances canceled", n)})
	return n
}

// pollEvents forwards screen events to the events channel until the
// screen is finalized or done is closed.
func (sc *Scope) pollEvents(done <-chan struct{}, events chan<- tcell.Event) {
	for {
		ev := sc.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run ticks the sim in real time and redraws after each update until the
// user quits.
func (sc *Scope) Run(s *sim.Sim) {
	sub := s.Subscribe()
	defer sub.Unsubscribe()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go sc.pollEvents(done, events)

	ticker := time.NewTicker(s.TickInterval)
	defer ticker.Stop()

	sc.Draw(s.GetStateUpdate(), time.Now())

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch sc.HandleEvent(ev) {
			case ActionQuit:
				sc.lg.Info("quit requested")
				return
			case ActionPause:
				s.TogglePause()
			case ActionCancelLandings:
				cancelLandings(s, sc.lg)
			}

		case <-ticker.C:
			if n := s.Update(); n > 1 {
				sc.lg.Debug("caught up", slog.Int("ticks", n))
			}
			sc.processEvents(sub.Get())
			sc.Draw(s.GetStateUpdate(), time.Now())
		}
	}
}
