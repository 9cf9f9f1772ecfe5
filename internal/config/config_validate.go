// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateRanking(); err != nil {
		return err
	}
	if err := c.validateProfiles(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP read and write timeouts must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateRanking delegates to the engine's own validation so the rules live
// in one place.
func (c *Config) validateRanking() error {
	if err := c.RankingEngineConfig().Validate(); err != nil {
		return fmt.Errorf("ranking config is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateProfiles() error {
	if c.Profiles.JanitorInterval <= 0 {
		return fmt.Errorf("PROFILE_JANITOR_INTERVAL must be positive")
	}
	if spec := c.Profiles.EngagementRefreshSchedule; spec != "" {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("PROFILE_ENGAGEMENT_REFRESH %q is not a valid schedule: %w", spec, err)
		}
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	switch c.Events.Backend {
	case "memory":
	case "nats":
		if c.Events.NATSURL == "" && !c.Events.EmbeddedServer {
			return fmt.Errorf("NATS_URL is required when EVENTS_BACKEND=nats without an embedded server")
		}
		if c.Events.EmbeddedServer && c.Events.StoreDir == "" {
			return fmt.Errorf("NATS_STORE_DIR is required when NATS_EMBEDDED=true")
		}
	default:
		return fmt.Errorf("EVENTS_BACKEND must be memory or nats, got %q", c.Events.Backend)
	}
	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required when EVENTS_ENABLED=true")
	}
	if c.Events.RetryCount < 0 {
		return fmt.Errorf("EVENTS_RETRY_COUNT must be non-negative, got %d", c.Events.RetryCount)
	}
	if c.Events.DedupEnabled && (c.Events.DedupCapacity < 1 || c.Events.DedupTTL <= 0) {
		return fmt.Errorf("EVENTS_DEDUP_CAPACITY and EVENTS_DEDUP_TTL must be positive when deduplication is enabled")
	}
	if c.Events.BreakerMaxFailures == 0 {
		return fmt.Errorf("EVENTS_BREAKER_MAX_FAILURES must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.Security.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.Security.MaxBodyBytes)
	}
	return nil
}
