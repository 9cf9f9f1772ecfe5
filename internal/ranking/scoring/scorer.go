// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package scoring implements the personalized relevance function.
//
// A score is the sum of independently capped terms:
//
//	popularity      min(netVotes / 100, 0.3)
//	category        0.4 when the category is preferred
//	keywords        min(0.1 per distinct matching profile keyword, 0.3)
//	recency         0.2 within 7 days, 0.1 within 30 days
//	status          0.1 while PENDING or UNDER_REVIEW
//	engagement      min(commentCount / 20, 0.2)
//	personalization +0.1/-0.05 from the first similar prior vote,
//	                +0.1 for high and -0.05 for low engagement users
//
// clamped to [0, 1]. All constants come from ranking.ScoringConfig.
package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

// Scorer implements ranking.Scorer. It is immutable and safe for
// concurrent use.
type Scorer struct {
	cfg          ranking.ScoringConfig
	keywordLimit int
}

// NewScorer creates a scorer from scoring configuration.
//
//nolint:gocritic // hugeParam: config copied once at construction
func NewScorer(cfg ranking.ScoringConfig) *Scorer {
	cfg.SimilarityTerms = append([]string(nil), cfg.SimilarityTerms...)
	s := &Scorer{cfg: cfg}

	// Matches beyond the cap cannot change the keyword term.
	if cfg.KeywordWeight > 0 {
		s.keywordLimit = int(math.Ceil(cfg.KeywordCap/cfg.KeywordWeight)) + 1
	}
	return s
}

// Score returns the personalized relevance of s for p in [0, 1].
func (sc *Scorer) Score(s *ranking.Suggestion, p *ranking.Profile, now time.Time) float64 {
	return sc.Explain(s, p, now).Total
}

// Explain returns every term of the score.
func (sc *Scorer) Explain(s *ranking.Suggestion, p *ranking.Profile, now time.Time) ranking.ScoreBreakdown {
	var b ranking.ScoreBreakdown
	if s == nil || p == nil {
		return b
	}
	c := &sc.cfg
	text := s.LowerText()

	b.Popularity = math.Min(float64(s.NetVotes)/c.PopularityDivisor, c.PopularityCap)

	if p.HasCategory(s.Category) {
		b.Category = c.CategoryBonus
	}

	if c.KeywordWeight > 0 {
		matches := p.KeywordMatches(text, sc.keywordLimit)
		b.Keywords = math.Min(float64(matches)*c.KeywordWeight, c.KeywordCap)
	}

	switch age := ranking.AgeDays(s.CreatedAt, now); {
	case age <= c.RecentDays:
		b.Recency = c.RecentBonus
	case age <= c.FreshDays:
		b.Recency = c.FreshBonus
	}

	if s.Status.IsOpen() {
		b.Status = c.OpenStatusBonus
	}

	b.Engagement = math.Max(0, math.Min(float64(s.CommentCount)/c.CommentDivisor, c.CommentCap))

	b.Personalization = sc.adjustment(s, text, p)

	b.Raw = b.Popularity + b.Category + b.Keywords + b.Recency + b.Status + b.Engagement + b.Personalization
	b.Total = clamp01(b.Raw)
	return b
}

// adjustment is the user-specific term: the first prior vote on a similar
// suggestion nudges the score by its direction, then engagement shifts it.
func (sc *Scorer) adjustment(s *ranking.Suggestion, text string, p *ranking.Profile) float64 {
	c := &sc.cfg
	adj := 0.0

	votes := p.Behavior.Votes
	for i := range votes {
		prior := votes[i].Suggestion
		if prior == nil || !sc.similar(prior, prior.LowerText(), s, text) {
			continue
		}
		if votes[i].VoteType == ranking.VoteUp {
			adj += c.SimilarUpvoteBonus
		} else {
			adj -= c.SimilarOtherPenalty
		}
		break
	}

	switch p.EngagementLevel {
	case ranking.EngagementHigh:
		adj += c.HighEngagementBonus
	case ranking.EngagementLow:
		adj -= c.LowEngagementPenalty
	}

	return adj
}

func (sc *Scorer) similar(a *ranking.Suggestion, aText string, b *ranking.Suggestion, bText string) bool {
	if a.Category == b.Category {
		return true
	}
	for _, term := range sc.cfg.SimilarityTerms {
		if strings.Contains(aText, term) && strings.Contains(bText, term) {
			return true
		}
	}
	return false
}

// Similar reports whether two suggestions share a category or both mention
// the same similarity term.
func (sc *Scorer) Similar(a, b *ranking.Suggestion) bool {
	return sc.similar(a, a.LowerText(), b, b.LowerText())
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

var _ ranking.Scorer = (*Scorer)(nil)
