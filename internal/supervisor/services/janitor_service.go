// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/suggestrank/internal/metrics"
	"github.com/tomtom215/suggestrank/internal/ranking"
)

// ProfileMaintainer is the engine surface used by the maintenance
// services. *ranking.Engine satisfies it.
type ProfileMaintainer interface {
	CleanupExpiredProfiles() int
	RefreshEngagement() int
	Stats() ranking.EngineStats
}

// ProfileJanitorService sweeps expired profiles on a fixed interval and
// publishes the cached profile count.
type ProfileJanitorService struct {
	engine   ProfileMaintainer
	interval time.Duration
	logger   zerolog.Logger
}

// NewProfileJanitorService creates the janitor. A non-positive interval
// defaults to one minute.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewProfileJanitorService(engine ProfileMaintainer, interval time.Duration, logger zerolog.Logger) *ProfileJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ProfileJanitorService{engine: engine, interval: interval, logger: logger}
}

// Serve implements suture.Service.
func (s *ProfileJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *ProfileJanitorService) sweep() {
	removed := s.engine.CleanupExpiredProfiles()
	cached := s.engine.Stats().CachedProfiles
	metrics.SetProfilesCached(cached)

	if removed > 0 {
		s.logger.Info().
			Int("removed", removed).
			Int("cached", cached).
			Msg("expired profiles removed")
	}
}

func (s *ProfileJanitorService) String() string {
	return "profile-janitor"
}
