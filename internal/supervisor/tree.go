// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds supervisor restart settings.
type TreeConfig struct {
	// FailureThreshold is the number of failures, decayed over
	// FailureDecay seconds, before a layer enters backoff.
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration

	// ShutdownTimeout bounds how long each service may take to stop.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns the production restart settings.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c *TreeConfig) applyDefaults() {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
}

// Tree is the service supervisor:
//
//	suggestrank
//	├── profiles-layer: profile janitor, engagement refresh, config reload
//	├── events-layer:   interaction pipeline
//	└── api-layer:      HTTP server
//
// A service failing repeatedly only backs off its own layer.
type Tree struct {
	root     *suture.Supervisor
	profiles *suture.Supervisor
	events   *suture.Supervisor
	api      *suture.Supervisor
	config   TreeConfig
}

// NewTree builds the supervisor tree. Supervisor events are logged through
// logger via sutureslog.
func NewTree(logger *slog.Logger, config TreeConfig) *Tree {
	config.applyDefaults()

	rootSpec := suture.Spec{
		EventHook:        (&sutureslog.Handler{Logger: logger}).MustHook(),
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}
	childSpec := rootSpec
	childSpec.EventHook = nil

	t := &Tree{
		root:     suture.New("suggestrank", rootSpec),
		profiles: suture.New("profiles-layer", childSpec),
		events:   suture.New("events-layer", childSpec),
		api:      suture.New("api-layer", childSpec),
		config:   config,
	}
	t.root.Add(t.profiles)
	t.root.Add(t.events)
	t.root.Add(t.api)
	return t
}

// AddProfileService adds a profile maintenance service.
func (t *Tree) AddProfileService(svc suture.Service) suture.ServiceToken {
	return t.profiles.Add(svc)
}

// AddEventService adds an event pipeline service.
func (t *Tree) AddEventService(svc suture.Service) suture.ServiceToken {
	return t.events.Add(svc)
}

// AddAPIService adds an API service.
func (t *Tree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve runs the tree until ctx is canceled.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine.
func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that did not stop within the
// shutdown timeout.
func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}

// Config returns the effective configuration.
func (t *Tree) Config() TreeConfig {
	return t.config
}
