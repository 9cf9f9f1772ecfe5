// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package keywords extracts profile keywords from free text and matches
// keyword sets against suggestion text.
package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinLength is the shortest token (in runes) kept by the extractor.
// Tokens of three characters or fewer are discarded.
const DefaultMinLength = 4

// Extractor turns free text into a set of lowercase keyword tokens.
// The zero value uses DefaultMinLength.
type Extractor struct {
	MinLength int
}

// NewExtractor creates an extractor keeping tokens of at least minLength runes.
// Non-positive values select DefaultMinLength.
func NewExtractor(minLength int) Extractor {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return Extractor{MinLength: minLength}
}

// Extract returns the distinct keywords of text in first-seen order.
func (e Extractor) Extract(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	e.each(text, func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	})
	return out
}

// AddTo unions the keywords of text into set. Empty text is a no-op.
func (e Extractor) AddTo(set map[string]struct{}, text string) {
	if set == nil {
		return
	}
	e.each(text, func(tok string) {
		set[tok] = struct{}{}
	})
}

func (e Extractor) each(text string, fn func(string)) {
	if text == "" {
		return
	}
	minLen := e.MinLength
	if minLen <= 0 {
		minLen = DefaultMinLength
	}

	for _, tok := range strings.Fields(normalize(text)) {
		if utf8.RuneCountInString(tok) >= minLen {
			fn(tok)
		}
	}
}

// normalize lowercases text and drops every rune that is neither an ASCII
// word character ([A-Za-z0-9_]) nor whitespace. Accented letters are
// dropped, so "café" becomes "caf".
func normalize(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case isASCIIWord(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text)
}

func isASCIIWord(r rune) bool {
	if r >= utf8.RuneSelf {
		return false
	}
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// Extract is a convenience wrapper using DefaultMinLength.
func Extract(text string) []string {
	return Extractor{}.Extract(text)
}

// AddTo is a convenience wrapper using DefaultMinLength.
func AddTo(set map[string]struct{}, text string) {
	Extractor{}.AddTo(set, text)
}
