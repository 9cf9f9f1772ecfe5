// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on its subpackages. Concrete
// scorers, stores and rerankers are injected through Components; the
// standard subpackage assembles the default set.

// Operation names reported to observers and logs.
const (
	OpPersonalized = "personalized"
	OpTrending     = "trending"
	OpContextual   = "contextual"
)

// Components are the pluggable parts of an Engine.
type Components struct {
	Profiles  ProfileStore
	Scorer    Scorer
	Trending  TrendCalculator
	Context   ContextMatcher
	Rerankers []Reranker
}

func (c *Components) validate() error {
	switch {
	case c.Profiles == nil:
		return errors.New("profile store is required")
	case c.Scorer == nil:
		return errors.New("scorer is required")
	case c.Trending == nil:
		return errors.New("trend calculator is required")
	case c.Context == nil:
		return errors.New("context matcher is required")
	}
	return nil
}

// Observer receives per-operation measurements, typically for metrics.
type Observer interface {
	ObserveRanking(operation string, duration time.Duration, returned int)
	ObserveUpdate(eventType string, applied bool)
}

type nopObserver struct{}

func (nopObserver) ObserveRanking(string, time.Duration, int) {}
func (nopObserver) ObserveUpdate(string, bool)               {}

// pipeline is the swappable, immutable part of the engine.
type pipeline struct {
	config    *Config
	scorer    Scorer
	trending  TrendCalculator
	context   ContextMatcher
	rerankers []Reranker
}

// Engine ranks suggestions for users. It owns no global state: the caller
// constructs it, wires it and decides its lifetime. It is safe for
// concurrent use.
//
// Ranking operations never fail. Missing input, a missing user or a
// cancelled context yields an empty list.
type Engine struct {
	logger   zerolog.Logger
	profiles ProfileStore
	current  atomic.Pointer[pipeline]
	now      func() time.Time
	observer Observer

	personalizedCount atomic.Int64
	trendingCount     atomic.Int64
	contextualCount   atomic.Int64
	updateCount       atomic.Int64
	unknownUpdates    atomic.Int64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock replaces time.Now as the engine's notion of the current time.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithObserver registers an observer for ranking measurements.
func WithObserver(o Observer) EngineOption {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEngine creates a ranking engine from validated configuration and
// components.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, components Components, logger zerolog.Logger, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := components.validate(); err != nil {
		return nil, fmt.Errorf("invalid components: %w", err)
	}

	e := &Engine{
		logger:   logger.With().Str("component", "ranking").Logger(),
		profiles: components.Profiles,
		now:      time.Now,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.current.Store(newPipeline(cfg, &components))

	for _, rr := range components.Rerankers {
		e.logger.Info().Str("reranker", rr.Name()).Msg("registered reranker")
	}
	return e, nil
}

func newPipeline(cfg *Config, c *Components) *pipeline {
	return &pipeline{
		config:    cfg.Clone(),
		scorer:    c.Scorer,
		trending:  c.Trending,
		context:   c.Context,
		rerankers: append([]Reranker(nil), c.Rerankers...),
	}
}

// Reconfigure atomically swaps configuration and stateless components.
// The profile store is kept; components.Profiles is ignored. In-flight
// requests finish on the previous pipeline.
func (e *Engine) Reconfigure(cfg *Config, components Components) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	components.Profiles = e.profiles
	if err := components.validate(); err != nil {
		return fmt.Errorf("invalid components: %w", err)
	}

	e.current.Store(newPipeline(cfg, &components))
	e.logger.Info().Msg("ranking pipeline reconfigured")
	return nil
}

// Config returns a copy of the active configuration.
func (e *Engine) Config() *Config {
	return e.current.Load().config.Clone()
}

// RankOption adjusts a single personalized ranking call.
type RankOption func(*rankOptions)

type rankOptions struct {
	explain bool
}

// WithExplain attaches the per-term score breakdown to every item.
func WithExplain() RankOption {
	return func(o *rankOptions) {
		o.explain = true
	}
}

// GeneratePersonalizedSuggestions scores every suggestion for user and
// returns a diversified list of at most the configured size. The user's
// profile is built from history on first sight and reused afterwards, so
// history is ignored while a profile is cached.
func (e *Engine) GeneratePersonalizedSuggestions(
	ctx context.Context,
	user *User,
	suggestions []Suggestion,
	history *Behavior,
	opts ...RankOption,
) []ScoredSuggestion {
	start := time.Now()
	e.personalizedCount.Add(1)

	if user == nil || len(suggestions) == 0 || ctx.Err() != nil {
		e.observer.ObserveRanking(OpPersonalized, time.Since(start), 0)
		return []ScoredSuggestion{}
	}

	var o rankOptions
	for _, opt := range opts {
		opt(&o)
	}

	profile := e.profiles.BuildOrGet(*user, history)
	if profile == nil {
		e.observer.ObserveRanking(OpPersonalized, time.Since(start), 0)
		return []ScoredSuggestion{}
	}

	pl := e.current.Load()
	now := e.now()

	scored := make([]ScoredSuggestion, len(suggestions))
	for i := range suggestions {
		s := &suggestions[i]
		b := pl.scorer.Explain(s, profile, now)
		scored[i] = ScoredSuggestion{
			Suggestion:        *s,
			AIScore:           b.Total,
			PersonalizedScore: b.Total,
		}
		if o.explain {
			breakdown := b
			scored[i].Breakdown = &breakdown
		}
	}

	if len(pl.rerankers) == 0 {
		scored = topByScore(scored, pl.config.Diversity.MaxResults)
	}
	for _, rr := range pl.rerankers {
		scored = rr.Rerank(ctx, scored)
	}

	e.observer.ObserveRanking(OpPersonalized, time.Since(start), len(scored))
	e.logger.Debug().
		Int64("user_id", user.ID).
		Int("candidates", len(suggestions)).
		Int("returned", len(scored)).
		Str("engagement", string(profile.EngagementLevel)).
		Dur("latency", time.Since(start)).
		Msg("personalized ranking complete")

	return scored
}

// topByScore sorts by descending score (stable) and truncates to k.
func topByScore(items []ScoredSuggestion, k int) []ScoredSuggestion {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PersonalizedScore > items[j].PersonalizedScore
	})
	if k > 0 && len(items) > k {
		items = items[:k]
	}
	return items
}

// TrendingSuggestions returns the open suggestions with the highest activity
// velocity per day of age.
//
// A non-positive limit, including an explicit 0, selects the configured
// default (5). Callers that want no items should not call it.
func (e *Engine) TrendingSuggestions(ctx context.Context, suggestions []Suggestion, limit int) []TrendingSuggestion {
	start := time.Now()
	e.trendingCount.Add(1)

	if len(suggestions) == 0 || ctx.Err() != nil {
		e.observer.ObserveRanking(OpTrending, time.Since(start), 0)
		return []TrendingSuggestion{}
	}

	out := e.current.Load().trending.Trending(suggestions, limit, e.now())
	if out == nil {
		out = []TrendingSuggestion{}
	}

	e.observer.ObserveRanking(OpTrending, time.Since(start), len(out))
	e.logger.Debug().
		Int("candidates", len(suggestions)).
		Int("limit", limit).
		Int("returned", len(out)).
		Msg("trending ranking complete")
	return out
}

// ContextualSuggestions returns the suggestions most relevant to a page
// context. Unknown contexts use the fallback dictionary.
func (e *Engine) ContextualSuggestions(ctx context.Context, suggestions []Suggestion, pageContext string) []ContextualSuggestion {
	start := time.Now()
	e.contextualCount.Add(1)

	if len(suggestions) == 0 || ctx.Err() != nil {
		e.observer.ObserveRanking(OpContextual, time.Since(start), 0)
		return []ContextualSuggestion{}
	}

	out := e.current.Load().context.Match(suggestions, pageContext)
	if out == nil {
		out = []ContextualSuggestion{}
	}

	e.observer.ObserveRanking(OpContextual, time.Since(start), len(out))
	e.logger.Debug().
		Str("context", pageContext).
		Int("candidates", len(suggestions)).
		Int("returned", len(out)).
		Msg("contextual ranking complete")
	return out
}

// UpdateProfile applies an interaction to the user's cached profile. When
// no profile has been built yet the event is dropped and false is returned;
// profiles are only created by ranking requests.
func (e *Engine) UpdateProfile(ctx context.Context, userID int64, event *InteractionEvent) bool {
	e.updateCount.Add(1)
	if event == nil || ctx.Err() != nil {
		return false
	}

	applied := e.profiles.Update(userID, event)
	e.observer.ObserveUpdate(string(event.Type), applied)

	if !applied {
		e.unknownUpdates.Add(1)
		e.logger.Debug().
			Int64("user_id", userID).
			Str("type", string(event.Type)).
			Msg("interaction for unknown profile ignored")
	}
	return applied
}

// Profile returns the cached profile snapshot for userID.
func (e *Engine) Profile(userID int64) (*Profile, bool) {
	return e.profiles.Get(userID)
}

// InvalidateProfile drops the cached profile; the next ranking request
// rebuilds it from the history it supplies.
func (e *Engine) InvalidateProfile(userID int64) bool {
	removed := e.profiles.Invalidate(userID)
	if removed {
		e.logger.Info().Int64("user_id", userID).Msg("profile invalidated")
	}
	return removed
}

// RefreshEngagement recomputes engagement levels of all cached profiles.
func (e *Engine) RefreshEngagement() int {
	changed := e.profiles.RefreshEngagement()
	e.logger.Info().Int("changed", changed).Msg("engagement refresh complete")
	return changed
}

// CleanupExpiredProfiles sweeps expired profiles.
func (e *Engine) CleanupExpiredProfiles() int {
	return e.profiles.CleanupExpired()
}

// EngineStats is a snapshot of engine counters.
type EngineStats struct {
	PersonalizedRequests int64 `json:"personalized_requests"`
	TrendingRequests     int64 `json:"trending_requests"`
	ContextualRequests   int64 `json:"contextual_requests"`
	ProfileUpdates       int64 `json:"profile_updates"`
	UnknownUpdates       int64 `json:"unknown_updates"`
	CachedProfiles       int   `json:"cached_profiles"`
}

// Stats returns the current counters.
func (e *Engine) Stats() EngineStats {
	return EngineStats{
		PersonalizedRequests: e.personalizedCount.Load(),
		TrendingRequests:     e.trendingCount.Load(),
		ContextualRequests:   e.contextualCount.Load(),
		ProfileUpdates:       e.updateCount.Load(),
		UnknownUpdates:       e.unknownUpdates.Load(),
		CachedProfiles:       e.profiles.Len(),
	}
}
