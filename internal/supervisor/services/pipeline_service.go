// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package services

import (
	"context"
	"fmt"
	"time"
)

// PipelineRunner is a component with an explicit start/stop lifecycle.
// *events.Pipeline satisfies it.
type PipelineRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
	IsRunning() bool
}

// PipelineService runs the interaction pipeline's consumer under
// supervision. A failed Start is returned for restart.
type PipelineService struct {
	runner          PipelineRunner
	shutdownTimeout time.Duration
}

// NewPipelineService wraps runner. A non-positive timeout defaults to 10s.
func NewPipelineService(runner PipelineRunner, shutdownTimeout time.Duration) *PipelineService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &PipelineService{runner: runner, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service.
func (s *PipelineService) Serve(ctx context.Context) error {
	if err := s.runner.Start(ctx); err != nil {
		return fmt.Errorf("interaction pipeline start failed: %w", err)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.runner.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("interaction pipeline shutdown failed: %w", err)
	}
	return ctx.Err()
}

func (s *PipelineService) String() string {
	return "interaction-pipeline"
}
