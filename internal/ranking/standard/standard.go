// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package standard assembles the default ranking components: the LRU
// profile store, the weighted scorer, category diversity, the velocity
// trend calculator and the dictionary context matcher.
package standard

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/ranking/contextual"
	"github.com/tomtom215/suggestrank/internal/ranking/profile"
	"github.com/tomtom215/suggestrank/internal/ranking/reranking"
	"github.com/tomtom215/suggestrank/internal/ranking/scoring"
	"github.com/tomtom215/suggestrank/internal/ranking/trending"
)

type options struct {
	clock         func() time.Time
	store         *profile.Store
	storeObserver profile.Observer
	observer      ranking.Observer
}

// Option configures NewEngine.
type Option func(*options)

// WithClock sets the clock for both the engine and a store created by
// NewEngine.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithStore uses an existing profile store instead of creating one.
// Callers that export store statistics create the store themselves.
func WithStore(s *profile.Store) Option {
	return func(o *options) { o.store = s }
}

// WithStoreObserver registers an observer on a store created by NewEngine.
func WithStoreObserver(obs profile.Observer) Option {
	return func(o *options) { o.storeObserver = obs }
}

// WithObserver registers an engine observer.
func WithObserver(obs ranking.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Components returns the stateless default components for cfg. Profiles is
// left nil.
func Components(cfg *ranking.Config) ranking.Components {
	return ranking.Components{
		Scorer:    scoring.NewScorer(cfg.Scoring),
		Trending:  trending.NewCalculator(cfg.Trending),
		Context:   contextual.NewMatcher(cfg.Context),
		Rerankers: []ranking.Reranker{reranking.NewCategoryDiversity(cfg.Diversity)},
	}
}

// NewStore creates the default profile store for cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(cfg *ranking.Config, logger zerolog.Logger, opts ...profile.Option) *profile.Store {
	return profile.NewStore(cfg.Profile, logger, opts...)
}

// NewEngine builds an engine wired with the default components.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *ranking.Config, logger zerolog.Logger, opts ...Option) (*ranking.Engine, error) {
	if cfg == nil {
		cfg = ranking.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ranking config: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		var storeOpts []profile.Option
		if o.clock != nil {
			storeOpts = append(storeOpts, profile.WithClock(o.clock))
		}
		if o.storeObserver != nil {
			storeOpts = append(storeOpts, profile.WithObserver(o.storeObserver))
		}
		store = NewStore(cfg, logger, storeOpts...)
	}

	components := Components(cfg)
	components.Profiles = store

	var engineOpts []ranking.EngineOption
	if o.clock != nil {
		engineOpts = append(engineOpts, ranking.WithClock(o.clock))
	}
	if o.observer != nil {
		engineOpts = append(engineOpts, ranking.WithObserver(o.observer))
	}

	engine, err := ranking.NewEngine(cfg, components, logger, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ranking engine: %w", err)
	}
	return engine, nil
}

// Reconfigure swaps the engine's pipeline for one built from cfg. Profile
// settings other than engagement thresholds only take effect for stores
// created afterwards.
func Reconfigure(engine *ranking.Engine, cfg *ranking.Config) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid ranking config: %w", err)
	}
	return engine.Reconfigure(cfg, Components(cfg))
}
