// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package keywords

// Matcher reports which of a fixed set of keywords occur as substrings of a
// text. It is an Aho-Corasick automaton built once at construction, so a text
// is scanned in a single pass regardless of how many keywords a profile holds.
//
// Matching is case-sensitive; callers lowercase the text when the keywords
// are lowercase. A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	root     *node
	patterns []string
}

type node struct {
	children map[rune]*node
	failure  *node
	output   []int // pattern indices ending here, including via failure links
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// NewMatcher builds a matcher over the given keywords. Empty and duplicate
// keywords are ignored.
func NewMatcher(patterns ...string) *Matcher {
	m := &Matcher{root: newNode()}

	seen := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		m.insert(len(m.patterns), p)
		m.patterns = append(m.patterns, p)
	}

	m.buildFailureLinks()
	return m
}

func (m *Matcher) insert(index int, pattern string) {
	n := m.root
	for _, ch := range pattern {
		next := n.children[ch]
		if next == nil {
			next = newNode()
			n.children[ch] = next
		}
		n = next
	}
	n.output = append(n.output, index)
}

// buildFailureLinks wires failure transitions breadth-first.
func (m *Matcher) buildFailureLinks() {
	queue := make([]*node, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// scan calls fn with the index of each distinct pattern found in text,
// in order of first occurrence. Scanning stops early when fn returns false.
func (m *Matcher) scan(text string, fn func(int) bool) {
	if len(m.patterns) == 0 || text == "" {
		return
	}

	found := make([]bool, len(m.patterns))
	remaining := len(m.patterns)
	n := m.root

	for _, ch := range text {
		for n != nil && n.children[ch] == nil {
			n = n.failure
		}
		if n == nil {
			n = m.root
			continue
		}
		n = n.children[ch]

		for _, idx := range n.output {
			if found[idx] {
				continue
			}
			found[idx] = true
			remaining--
			if !fn(idx) || remaining == 0 {
				return
			}
		}
	}
}

// Matches returns the distinct keywords present in text, in order of first
// occurrence.
func (m *Matcher) Matches(text string) []string {
	var out []string
	m.scan(text, func(idx int) bool {
		out = append(out, m.patterns[idx])
		return true
	})
	return out
}

// Count returns how many distinct keywords occur in text. A positive limit
// stops the scan once that many have been found.
func (m *Matcher) Count(text string, limit int) int {
	count := 0
	m.scan(text, func(int) bool {
		count++
		return limit <= 0 || count < limit
	})
	return count
}

// Contains reports whether any keyword occurs in text.
func (m *Matcher) Contains(text string) bool {
	return m.Count(text, 1) > 0
}

// Len returns the number of distinct keywords in the matcher.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// Patterns returns a copy of the matcher's keywords in insertion order.
func (m *Matcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}
