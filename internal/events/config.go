// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/suggestrank/internal/config"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendNATS   = "nats"
)

// Config configures the interaction pipeline.
type Config struct {
	Backend string

	// NATS settings, used when Backend is BackendNATS.
	NATSURL        string
	EmbeddedServer bool
	StoreDir       string
	StreamName     string
	DurableName    string
	QueueGroup     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	AckWaitTimeout time.Duration

	Topic       string
	PoisonTopic string

	// Router settings.
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
	ThrottlePerSecond    int64
	DedupEnabled         bool
	DedupTTL             time.Duration
	DedupCapacity        int
	CloseTimeout         time.Duration

	// Publish circuit breaker.
	BreakerName        string
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// DefaultConfig returns an in-memory pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Backend:              BackendMemory,
		NATSURL:              "nats://127.0.0.1:4222",
		StreamName:           "SUGGESTION_INTERACTIONS",
		DurableName:          "suggestrank-profiles",
		QueueGroup:           "suggestrank",
		MaxReconnects:        -1,
		ReconnectWait:        2 * time.Second,
		AckWaitTimeout:       30 * time.Second,
		Topic:                "suggestion.interactions",
		PoisonTopic:          "suggestion.interactions.poison",
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
		RetryMultiplier:      2.0,
		DedupEnabled:         true,
		DedupTTL:             10 * time.Minute,
		DedupCapacity:        100000,
		CloseTimeout:         30 * time.Second,
		BreakerName:          "interaction-publisher",
		BreakerMaxFailures:   5,
		BreakerTimeout:       30 * time.Second,
	}
}

// ConfigFromService maps the service's events section onto a pipeline
// configuration. Unset values keep their defaults.
func ConfigFromService(c *config.EventsConfig) Config {
	cfg := DefaultConfig()
	if c == nil {
		return cfg
	}

	if c.Backend != "" {
		cfg.Backend = strings.ToLower(c.Backend)
	}
	if c.NATSURL != "" {
		cfg.NATSURL = c.NATSURL
	}
	cfg.EmbeddedServer = c.EmbeddedServer
	cfg.StoreDir = c.StoreDir
	if c.DurableName != "" {
		cfg.DurableName = c.DurableName
	}
	if c.QueueGroup != "" {
		cfg.QueueGroup = c.QueueGroup
	}
	if c.Topic != "" {
		cfg.Topic = c.Topic
	}
	if c.PoisonTopic != "" {
		cfg.PoisonTopic = c.PoisonTopic
	}
	if c.RetryCount > 0 {
		cfg.RetryMaxRetries = c.RetryCount
	}
	if c.RetryInitialInterval > 0 {
		cfg.RetryInitialInterval = c.RetryInitialInterval
	}
	cfg.ThrottlePerSecond = int64(c.ThrottlePerSecond)
	cfg.DedupEnabled = c.DedupEnabled
	if c.DedupTTL > 0 {
		cfg.DedupTTL = c.DedupTTL
	}
	if c.DedupCapacity > 0 {
		cfg.DedupCapacity = c.DedupCapacity
	}
	if c.CloseTimeout > 0 {
		cfg.CloseTimeout = c.CloseTimeout
	}
	if c.BreakerMaxFailures > 0 {
		cfg.BreakerMaxFailures = c.BreakerMaxFailures
	}
	if c.BreakerTimeout > 0 {
		cfg.BreakerTimeout = c.BreakerTimeout
	}
	return cfg
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendNATS:
		if c.NATSURL == "" && !c.EmbeddedServer {
			return fmt.Errorf("%w: nats backend needs a URL or the embedded server", ErrInvalidConfig)
		}
		if c.StreamName == "" || strings.ContainsAny(c.StreamName, ".*> ") {
			return fmt.Errorf("%w: invalid stream name %q", ErrInvalidConfig, c.StreamName)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}

	if c.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}
	if c.PoisonTopic == c.Topic {
		return fmt.Errorf("%w: poison topic must differ from topic", ErrInvalidConfig)
	}
	if c.RetryMaxRetries < 0 {
		return fmt.Errorf("%w: retry count must be >= 0", ErrInvalidConfig)
	}
	if c.DedupEnabled && (c.DedupTTL <= 0 || c.DedupCapacity <= 0) {
		return fmt.Errorf("%w: deduplication needs a positive TTL and capacity", ErrInvalidConfig)
	}
	if c.BreakerMaxFailures == 0 {
		return fmt.Errorf("%w: breaker max failures must be > 0", ErrInvalidConfig)
	}
	return nil
}
