// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package keywords

import (
	"reflect"
	"sort"
	"testing"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"short tokens dropped", "a bb ccc", nil},
		{"exactly four kept", "dark mode", []string{"dark", "mode"}},
		{"lowercased", "Dashboard WIDGETS", []string{"dashboard", "widgets"}},
		{"punctuation stripped", "export, to-csv! please?", []string{"export", "tocsv", "please"}},
		{"underscore kept", "snake_case ids", []string{"snake_case"}},
		{"duplicates collapsed", "chart chart Chart", []string{"chart"}},
		{"digits count", "http2 push", []string{"http2", "push"}},
		{"non-ascii letters dropped", "Übersicht café", []string{"bersicht"}},
		{"accents removed before length check", "Naïve café résumé über-dashboard", []string{"nave", "rsum", "berdashboard"}},
		{"tabs and newlines split", "alpha\tbeta\ngamma", []string{"alpha", "beta", "gamma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractor_MinLength(t *testing.T) {
	t.Parallel()

	e := NewExtractor(6)
	got := e.Extract("analytics chart report")
	want := []string{"analytics", "report"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}

	if NewExtractor(0).MinLength != DefaultMinLength {
		t.Errorf("NewExtractor(0).MinLength = %d, want %d", NewExtractor(0).MinLength, DefaultMinLength)
	}
}

func TestAddTo_Idempotent(t *testing.T) {
	t.Parallel()

	set := map[string]struct{}{"existing": {}}
	AddTo(set, "Better dashboard filters")
	AddTo(set, "better DASHBOARD filters")
	AddTo(set, "")

	got := make([]string, 0, len(set))
	for k := range set {
		got = append(got, k)
	}
	sort.Strings(got)

	want := []string{"better", "dashboard", "existing", "filters"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("set = %v, want %v", got, want)
	}
}

func TestAddTo_NilSet(t *testing.T) {
	t.Parallel()
	// Must not panic.
	AddTo(nil, "something useful")
}
