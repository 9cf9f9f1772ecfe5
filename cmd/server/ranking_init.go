// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/suggestrank/internal/config"
	"github.com/tomtom215/suggestrank/internal/metrics"
	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/ranking/profile"
	"github.com/tomtom215/suggestrank/internal/ranking/standard"
)

// initRanking builds the profile store and the engine around it. The store
// is returned separately for the stats endpoint.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initRanking(cfg *config.Config, logger zerolog.Logger) (*ranking.Engine, *profile.Store, error) {
	rankingCfg := cfg.RankingEngineConfig()

	store := standard.NewStore(rankingCfg, logger, profile.WithObserver(metrics.ProfileObserver{}))
	engine, err := standard.NewEngine(rankingCfg, logger,
		standard.WithStore(store),
		standard.WithObserver(metrics.RankingObserver{}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("init ranking engine: %w", err)
	}

	logger.Info().
		Int("max_results", rankingCfg.Diversity.MaxResults).
		Int("profile_capacity", rankingCfg.Profile.Capacity).
		Dur("profile_ttl", rankingCfg.Profile.TTL).
		Msg("ranking engine initialized")
	return engine, store, nil
}

// reloadRanking returns the config reload callback: it re-reads path and
// swaps the engine's tunables. Invalid files leave the engine untouched.
func reloadRanking(engine *ranking.Engine, path string) func() error {
	return func() error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		return standard.Reconfigure(engine, cfg.RankingEngineConfig())
	}
}
