// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package api

import (
	"context"
	"time"

	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/ranking/profile"
)

// InteractionPublisher publishes interaction events to the event bus.
type InteractionPublisher interface {
	PublishInteraction(ctx context.Context, eventID string, userID int64, event *ranking.InteractionEvent) error
}

// ProfileStatsProvider exposes profile cache counters.
type ProfileStatsProvider interface {
	Stats() profile.StoreStats
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type namedCheck struct {
	name  string
	check ReadinessCheck
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_ranking.go: personalized, trending and contextual ranking
//   - handlers_profiles.go: profile snapshot, invalidation and events
//   - handlers_health.go: probes, ranking config and stats
type Handler struct {
	engine    *ranking.Engine
	profiles  ProfileStatsProvider
	publisher InteractionPublisher
	checks    []namedCheck
	version   string
	startTime time.Time
	now       func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithProfileStats adds profile cache counters to the stats endpoint.
func WithProfileStats(p ProfileStatsProvider) HandlerOption {
	return func(h *Handler) {
		h.profiles = p
	}
}

// WithPublisher routes submitted interactions through the event bus.
func WithPublisher(p InteractionPublisher) HandlerOption {
	return func(h *Handler) {
		h.publisher = p
	}
}

// WithReadinessCheck adds a named dependency check to the readiness probe.
func WithReadinessCheck(name string, check ReadinessCheck) HandlerOption {
	return func(h *Handler) {
		if check != nil {
			h.checks = append(h.checks, namedCheck{name: name, check: check})
		}
	}
}

// WithVersion sets the version reported by the health endpoints.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) {
		h.version = v
	}
}

// NewHandler creates the API handler.
//
//	engine, _ := standard.NewEngine(cfg, logger)
//	h := api.NewHandler(engine, api.WithProfileStats(store))
//	router := api.NewRouter(h, api.DefaultChiMiddlewareConfig())
//	http.ListenAndServe(":8080", router.Setup())
func NewHandler(engine *ranking.Engine, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:    engine,
		startTime: time.Now(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
