// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package trending ranks open suggestions by activity velocity per day of age.
package trending

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

// Calculator implements ranking.TrendCalculator.
//
//	velocity   = netVotes + 2 * commentCount
//	trendScore = velocity / max(ageDays, 1)
type Calculator struct {
	defaultLimit  int
	commentWeight int
	minAgeDays    float64
}

// NewCalculator creates a calculator from trending configuration.
func NewCalculator(cfg ranking.TrendingConfig) *Calculator {
	defaults := ranking.DefaultConfig().Trending
	c := &Calculator{
		defaultLimit:  cfg.DefaultLimit,
		commentWeight: cfg.CommentWeight,
		minAgeDays:    cfg.MinAgeDays,
	}
	if c.defaultLimit <= 0 {
		c.defaultLimit = defaults.DefaultLimit
	}
	if c.minAgeDays <= 0 {
		c.minAgeDays = defaults.MinAgeDays
	}
	return c
}

// Trending returns at most limit open suggestions ordered by trend score.
// A non-positive limit, 0 included, selects the configured default rather
// than an empty result.
func (c *Calculator) Trending(suggestions []ranking.Suggestion, limit int, now time.Time) []ranking.TrendingSuggestion {
	if limit <= 0 {
		limit = c.defaultLimit
	}

	out := make([]ranking.TrendingSuggestion, 0, len(suggestions))
	for i := range suggestions {
		s := &suggestions[i]
		if !s.Status.IsOpen() {
			continue
		}

		velocity := s.NetVotes + c.commentWeight*s.CommentCount
		age := ranking.AgeDays(s.CreatedAt, now)
		score := float64(velocity) / math.Max(age, c.minAgeDays)
		if math.IsNaN(score) || math.IsInf(score, 0) {
			score = 0
		}

		out = append(out, ranking.TrendingSuggestion{
			Suggestion: *s,
			TrendScore: score,
			Velocity:   velocity,
			AgeDays:    finiteOrZero(age),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TrendScore > out[j].TrendScore
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// finiteOrZero keeps unknown ages out of JSON output, which cannot encode Inf.
func finiteOrZero(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

var _ ranking.TrendCalculator = (*Calculator)(nil)
