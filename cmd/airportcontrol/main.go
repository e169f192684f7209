// cmd/airportcontrol/main.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// loads a scenario and then either runs it headless for a fixed number of
// ticks or shows it on the terminal radar scope until the user quits.

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/airportcontrol/airportcontrol/log"
	"github.com/airportcontrol/airportcontrol/nav"
	"github.com/airportcontrol/airportcontrol/radar"
	"github.com/airportcontrol/airportcontrol/sim"
	"github.com/airportcontrol/airportcontrol/util"

	"github.com/apenwarr/fixconsole"
	"github.com/gdamore/tcell/v2"
)

var (
	cpuprofile       = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile       = flag.String("memprofile", "", "write memory profile to this file")
	logLevel         = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir           = flag.String("logdir", "", "log file directory")
	scenarioFilename = flag.String("scenario", "", "filename of JSON or YAML file with a scenario definition")
	lintScenario     = flag.Bool("lint", false, "check the validity of the scenario and exit")
	headless         = flag.Bool("headless", false, "run without the radar scope, printing events as they happen")
	numTicks         = flag.Int("ticks", 1200, "number of ticks to run when headless")
	tickRate         = flag.Float64("rate", 20, "ticks per second when running interactively")
	workers          = flag.Int("workers", 0, "number of aircraft updated concurrently (0 = GOMAXPROCS)")
	dumpState        = flag.Bool("dump", false, "dump the final sim state to stdout")
	navLog           = flag.Bool("navlog", false, "enable navigation logging")
	navLogCategories = flag.String("navlog-categories", "all", "navigation log categories (comma-separated: state,waypoint,heading,boundary)")
	navLogCallsign   = flag.String("navlog-callsign", "", "filter navigation logs to only show this callsign (empty = show all)")
)

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()

	nav.InitNavLog(*navLog, *navLogCategories, *navLogCallsign)

	scenario := sim.DefaultScenario()
	if *scenarioFilename != "" {
		var e util.ErrorLogger
		scenario = sim.LoadScenario(*scenarioFilename, &e)
		if e.HaveErrors() {
			e.PrintErrors(lg)
			os.Exit(1)
		}
	}
	if *lintScenario {
		fmt.Printf("%s: %d aircraft, %d runways, %dx%d cells\n", scenario.Name, len(scenario.Aircraft),
			len(scenario.Runways), scenario.Width, scenario.Height)
		return
	}

	if *tickRate <= 0 {
		fmt.Fprintf(os.Stderr, "-rate must be positive\n")
		os.Exit(1)
	}
	config := sim.SimConfig{
		Workers:      *workers,
		TickInterval: time.Duration(float64(time.Second) / *tickRate),
	}

	s, err := sim.NewSim(scenario, config, lg)
	if err != nil {
		lg.Errorf("%s: %v", scenario.Name, err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", scenario.Name, err)
		os.Exit(1)
	}
	defer s.Destroy()

	if *headless {
		runHeadless(s, *numTicks)
	} else if err := runScope(s, lg); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *dumpState {
		s.DumpState(os.Stdout)
	}
}

func runHeadless(s *sim.Sim, ticks int) {
	sub := s.Subscribe()
	defer sub.Unsubscribe()

	for range ticks {
		s.Step(s.TickInterval)
		for _, ev := range sub.Get() {
			fmt.Printf("%8s %s\n", s.SimTime.Truncate(time.Millisecond), ev.String())
		}
	}

	su := s.GetStateUpdate()
	fmt.Printf("\nAfter %d ticks (%s), %d aircraft remain:\n", su.Ticks, su.SimTime, len(su.Aircraft))
	for _, callsign := range util.SortedMapKeys(su.Aircraft) {
		ac := su.Aircraft[callsign]
		fmt.Printf("  %-8s %s, %d waypoints left\n", callsign, ac.FlightState.Summary(), len(ac.Waypoints))
	}
}

func runScope(s *sim.Sim, lg *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("unable to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("unable to initialize screen: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorReset).
		Foreground(tcell.ColorReset))

	scope := radar.NewScope(screen, radar.NewEffects(2*time.Second), lg)
	scope.Run(s)

	return nil
}
