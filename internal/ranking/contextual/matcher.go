// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package contextual ranks suggestions by how many keywords of a page
// context's dictionary they mention.
package contextual

import (
	"sort"

	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/ranking/keywords"
)

// Matcher implements ranking.ContextMatcher. Dictionaries are compiled once
// at construction.
//
// An unknown context name falls back to the configured fallback dictionary
// (dashboard by default) instead of matching nothing.
type Matcher struct {
	dictionaries map[string]*keywords.Matcher
	fallback     string
	maxResults   int
}

// NewMatcher compiles the context dictionaries.
func NewMatcher(cfg ranking.ContextConfig) *Matcher {
	m := &Matcher{
		dictionaries: make(map[string]*keywords.Matcher, len(cfg.Dictionaries)),
		fallback:     cfg.Fallback,
		maxResults:   cfg.MaxResults,
	}
	for name, words := range cfg.Dictionaries {
		m.dictionaries[name] = keywords.NewMatcher(words...)
	}
	if m.maxResults <= 0 {
		m.maxResults = ranking.DefaultConfig().Context.MaxResults
	}
	return m
}

// Resolve returns the dictionary name used for context.
func (m *Matcher) Resolve(context string) string {
	if _, ok := m.dictionaries[context]; ok {
		return context
	}
	return m.fallback
}

// Contexts returns the known context names in sorted order.
func (m *Matcher) Contexts() []string {
	out := make([]string, 0, len(m.dictionaries))
	for name := range m.dictionaries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Match scores each suggestion by the number of distinct dictionary
// keywords in its lowercased text, drops zero scores, orders by score
// (stable) and keeps the top results.
func (m *Matcher) Match(suggestions []ranking.Suggestion, context string) []ranking.ContextualSuggestion {
	resolved := m.Resolve(context)
	dict := m.dictionaries[resolved]
	if dict == nil {
		return []ranking.ContextualSuggestion{}
	}

	out := make([]ranking.ContextualSuggestion, 0)
	for i := range suggestions {
		s := &suggestions[i]
		matched := dict.Matches(s.LowerText())
		if len(matched) == 0 {
			continue
		}
		out = append(out, ranking.ContextualSuggestion{
			Suggestion:      *s,
			ContextualScore: len(matched),
			Context:         resolved,
			MatchedKeywords: matched,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ContextualScore > out[j].ContextualScore
	})

	if len(out) > m.maxResults {
		out = out[:m.maxResults]
	}
	return out
}

var _ ranking.ContextMatcher = (*Matcher)(nil)
