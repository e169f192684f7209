// util/prof.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"os"
	"runtime/pprof"
)

// Profiler writes CPU and heap profiles for a run of the program. Either
// filename may be empty, in which case that profile isn't collected.
type Profiler struct {
	cpu, mem *os.File
}

func CreateProfiler(cpu, mem string) (*Profiler, error) {
	p := &Profiler{}

	var err error
	if cpu != "" {
		if p.cpu, err = os.Create(cpu); err != nil {
			return nil, fmt.Errorf("%s: unable to create CPU profile file: %w", cpu, err)
		} else if err = pprof.StartCPUProfile(p.cpu); err != nil {
			p.cpu.Close()
			return nil, fmt.Errorf("unable to start CPU profile: %w", err)
		}
	}

	if mem != "" {
		if p.mem, err = os.Create(mem); err != nil {
			p.Cleanup()
			return nil, fmt.Errorf("%s: unable to create memory profile file: %w", mem, err)
		}
	}

	return p, nil
}

// Cleanup stops CPU profiling and writes the heap profile. It may be
// called more than once.
func (p *Profiler) Cleanup() {
	if p == nil {
		return
	}
	if p.cpu != nil {
		pprof.StopCPUProfile()
		p.cpu.Close()
		p.cpu = nil
	}
	if p.mem != nil {
		if err := pprof.WriteHeapProfile(p.mem); err != nil {
			fmt.Fprintf(os.Stderr, "unable to write memory profile file: %v\n", err)
		}
		p.mem.Close()
		p.mem = nil
	}
}
