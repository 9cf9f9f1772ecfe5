// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/suggestrank/internal/config"
	"github.com/tomtom215/suggestrank/internal/events"
	"github.com/tomtom215/suggestrank/internal/ranking"
)

// initEvents creates the interaction pipeline, or returns nil when events
// are disabled.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initEvents(ctx context.Context, cfg *config.Config, engine *ranking.Engine, logger zerolog.Logger) (*events.Pipeline, error) {
	if !cfg.Events.Enabled {
		logger.Info().Msg("interaction events disabled, applying interactions inline")
		return nil, nil
	}

	pipeline, err := events.NewPipeline(ctx, events.ConfigFromService(&cfg.Events), engine, logger)
	if err != nil {
		return nil, fmt.Errorf("init interaction pipeline: %w", err)
	}
	return pipeline, nil
}
