// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package profile derives user preference profiles from role and interaction
// history and keeps them in a bounded, concurrency-safe store.
package profile

import (
	"time"

	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/ranking/keywords"
)

// Builder derives profiles. It holds no state beyond its configuration and
// is safe for concurrent use.
type Builder struct {
	cfg       ranking.ProfileConfig
	extractor keywords.Extractor
}

// NewBuilder creates a builder from profile configuration.
//
//nolint:gocritic // hugeParam: config copied once at construction
func NewBuilder(cfg ranking.ProfileConfig) *Builder {
	return &Builder{
		cfg:       cfg,
		extractor: keywords.NewExtractor(cfg.KeywordMinLength),
	}
}

// Build derives a fresh profile for user from history. A nil history is
// treated as empty. The returned profile is not sealed.
func (b *Builder) Build(user ranking.User, history *ranking.Behavior, now time.Time) *ranking.Profile {
	p := &ranking.Profile{
		UserID:              user.ID,
		Role:                user.Role,
		PreferredCategories: ranking.NewStringSet(),
		Keywords:            ranking.NewStringSet(),
		EngagementLevel:     ranking.EngagementMedium,
		BuiltAt:             now,
		LastUpdated:         now,
	}

	if history == nil {
		history = &ranking.Behavior{}
	}

	for i := range history.Votes {
		if s := history.Votes[i].Suggestion; s != nil {
			b.addCategory(p, s.Category)
			b.extractor.AddTo(p.Keywords, s.Text())
		}
	}

	// Comment keywords come from what the user wrote, not the suggestion text.
	for i := range history.Comments {
		c := &history.Comments[i]
		if c.Suggestion != nil {
			b.addCategory(p, c.Suggestion.Category)
			b.extractor.AddTo(p.Keywords, c.Content)
		}
	}

	p.Behavior.Votes = tail(history.Votes, b.cfg.MaxHistory)
	p.Behavior.Comments = tail(history.Comments, b.cfg.MaxHistory)
	if len(history.Views) > 0 {
		p.Behavior.Views = tail(history.Views, b.cfg.MaxHistory)
		p.Behavior.TimeSpent = history.TimeSpent
	}

	// Engagement reflects the full supplied history, not the retained window.
	p.EngagementLevel = b.Engagement(history.InteractionCount())

	for _, c := range b.roleCategories(user.Role) {
		p.PreferredCategories.Add(c)
	}

	return p
}

// Apply returns a copy of p with event folded in. The interaction is
// appended to the matching behavior list and the suggestion's category and
// keywords join the profile. Engagement is left as it was.
func (b *Builder) Apply(p *ranking.Profile, event *ranking.InteractionEvent, now time.Time) *ranking.Profile {
	next := p.Clone()

	switch event.Type {
	case ranking.InteractionVote:
		next.Behavior.Votes = tail(append(next.Behavior.Votes, ranking.VoteEvent{
			Suggestion: event.Suggestion,
			VoteType:   event.VoteType,
			CreatedAt:  event.OccurredAt,
		}), b.cfg.MaxHistory)
	case ranking.InteractionComment:
		next.Behavior.Comments = tail(append(next.Behavior.Comments, ranking.CommentEvent{
			Suggestion: event.Suggestion,
			Content:    event.Content,
			CreatedAt:  event.OccurredAt,
		}), b.cfg.MaxHistory)
	case ranking.InteractionView:
		view := ranking.ViewEvent{ViewedAt: event.OccurredAt}
		if event.Suggestion != nil {
			view.SuggestionID = event.Suggestion.ID
		}
		next.Behavior.Views = tail(append(next.Behavior.Views, view), b.cfg.MaxHistory)
	}

	if s := event.Suggestion; s != nil {
		b.addCategory(next, s.Category)
		b.extractor.AddTo(next.Keywords, s.Text())
	}

	next.LastUpdated = now
	return next
}

// Engagement maps an interaction count to an engagement level.
func (b *Builder) Engagement(interactions int) ranking.EngagementLevel {
	switch {
	case interactions > b.cfg.HighEngagementThreshold:
		return ranking.EngagementHigh
	case interactions > b.cfg.MediumEngagementThreshold:
		return ranking.EngagementMedium
	default:
		return ranking.EngagementLow
	}
}

// Reengage returns a copy of p with engagement recomputed from the retained
// history, or nil when the level would not change.
func (b *Builder) Reengage(p *ranking.Profile) *ranking.Profile {
	level := b.Engagement(p.Behavior.InteractionCount())
	if level == p.EngagementLevel {
		return nil
	}
	next := p.Clone()
	next.EngagementLevel = level
	return next
}

func (b *Builder) roleCategories(role ranking.Role) []string {
	if cats, ok := b.cfg.RoleCategories[role]; ok {
		return cats
	}
	return b.cfg.DefaultCategories
}

// addCategory skips empty categories so an uncategorized suggestion never
// turns "no category" into a preference.
func (b *Builder) addCategory(p *ranking.Profile, category string) {
	if category != "" {
		p.PreferredCategories.Add(category)
	}
}

// tail returns a copy of the last limit elements of s.
func tail[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		s = s[len(s)-limit:]
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
