// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Command rankctl ranks suggestions from JSON files without running the
// server.
//
//	rankctl personalized --user-id 42 --role user --suggestions s.json --behavior b.json --explain
//	rankctl trending --suggestions s.json --limit 3 --output yaml
//	rankctl context --suggestions s.json --name dashboard
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rankctl:", err)
		os.Exit(1)
	}
}
