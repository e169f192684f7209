// log/race.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build race

package log

// RaceEnabled reports whether the binary was built with -race; it's
// recorded at startup so that slow runs can be explained.
const RaceEnabled = true
