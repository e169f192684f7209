//go:build navlog

// nav/log_debug.go
// Copyright(c) 2022-2025 airportcontrol contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"strings"
)

// Navigation logging configuration
var (
	navlogEnabled    bool
	navlogCategories map[string]bool
	navlogCallsign   string // filter to only log this callsign (empty = log all)
)

// InitNavLog initializes the navigation logging system
func InitNavLog(enabled bool, categories string, callsign string) {
	navlogEnabled = enabled
	navlogCategories = make(map[string]bool)
	navlogCallsign = strings.TrimSpace(callsign)

	if !enabled {
		return
	}

	if categories == "" || categories == "all" {
		for _, cat := range navLogAllCategories {
			navlogCategories[cat] = true
		}
	} else {
		for _, cat := range strings.Split(categories, ",") {
			navlogCategories[strings.TrimSpace(cat)] = true
		}
	}
}

// NavLog logs a message with callsign and category
func NavLog(callsign string, category string, format string, args ...interface{}) {
	if !NavLogEnabled(category) {
		return
	}

	// Filter by callsign if specified
	if navlogCallsign != "" && navlogCallsign != callsign {
		return
	}

	// Format: [callsign] [category] message
	fmt.Printf("[%s] [%s] %s\n", callsign, category, fmt.Sprintf(format, args...))
}

// NavLogEnabled returns whether navigation logging is enabled for a given category
func NavLogEnabled(category string) bool {
	return navlogEnabled && navlogCategories[category]
}
