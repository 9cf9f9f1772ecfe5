// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/suggestrank/internal/metrics"
)

// EngagementRefreshService recomputes the engagement level of cached
// profiles on a cron schedule.
type EngagementRefreshService struct {
	engine   ProfileMaintainer
	schedule cron.Schedule
	spec     string
	logger   zerolog.Logger
}

// NewEngagementRefreshService parses spec, a standard five-field cron
// expression or a descriptor such as "@every 6h".
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngagementRefreshService(engine ProfileMaintainer, spec string, logger zerolog.Logger) (*EngagementRefreshService, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse engagement refresh schedule %q: %w", spec, err)
	}
	return &EngagementRefreshService{
		engine:   engine,
		schedule: schedule,
		spec:     spec,
		logger:   logger,
	}, nil
}

// Serve implements suture.Service. A refresh in progress finishes before
// Serve returns.
func (s *EngagementRefreshService) Serve(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(s.schedule, cron.FuncJob(s.refresh))
	c.Start()

	s.logger.Info().Str("schedule", s.spec).Msg("engagement refresh scheduled")

	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

func (s *EngagementRefreshService) refresh() {
	start := time.Now()
	changed := s.engine.RefreshEngagement()
	metrics.RecordEngagementRefresh(changed)

	s.logger.Info().
		Int("changed", changed).
		Dur("duration", time.Since(start)).
		Msg("engagement levels refreshed")
}

func (s *EngagementRefreshService) String() string {
	return "engagement-refresh"
}
