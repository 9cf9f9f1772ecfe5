// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// WatchFunc starts watching a file, calling onChange for every change, and
// returns a function that stops the watch. config.WatchConfigFile has this
// shape.
type WatchFunc func(path string, onChange func()) (func() error, error)

// ConfigReloadService calls reload whenever the config file changes.
// Change notifications are coalesced and reloads never overlap.
type ConfigReloadService struct {
	path   string
	watch  WatchFunc
	reload func() error
	logger zerolog.Logger
}

// NewConfigReloadService creates the service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewConfigReloadService(path string, watch WatchFunc, reload func() error, logger zerolog.Logger) *ConfigReloadService {
	return &ConfigReloadService{path: path, watch: watch, reload: reload, logger: logger}
}

// Serve implements suture.Service.
func (s *ConfigReloadService) Serve(ctx context.Context) error {
	changed := make(chan struct{}, 1)
	stop, err := s.watch(s.path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("watch config file %s: %w", s.path, err)
	}
	defer func() {
		if err := stop(); err != nil {
			s.logger.Debug().Err(err).Msg("stop config watch")
		}
	}()

	s.logger.Info().Str("path", s.path).Msg("watching config file")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
			if err := s.reload(); err != nil {
				s.logger.Error().Err(err).Str("path", s.path).Msg("config reload rejected, keeping current settings")
				continue
			}
			s.logger.Info().Str("path", s.path).Msg("config reloaded")
		}
	}
}

func (s *ConfigReloadService) String() string {
	return "config-reload"
}
