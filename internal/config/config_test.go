// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

func TestDefaultConfig_Valid(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() error = %v", err)
	}
}

func TestRankingEngineConfig_MatchesEngineDefaults(t *testing.T) {
	t.Parallel()

	got := defaultConfig().RankingEngineConfig()
	want := ranking.DefaultConfig()

	if !reflect.DeepEqual(got.Scoring, want.Scoring) {
		t.Errorf("scoring = %+v, want %+v", got.Scoring, want.Scoring)
	}
	if !reflect.DeepEqual(got.Profile, want.Profile) {
		t.Errorf("profile = %+v, want %+v", got.Profile, want.Profile)
	}
	if got.Diversity != want.Diversity || got.Trending != want.Trending {
		t.Errorf("diversity/trending = %+v/%+v", got.Diversity, got.Trending)
	}
	if !reflect.DeepEqual(got.Context, want.Context) {
		t.Errorf("context = %+v, want %+v", got.Context, want.Context)
	}
}

func TestRankingEngineConfig_Overrides(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Ranking.CategoryBonus = 0.5
	cfg.Ranking.MaxResults = 20
	cfg.Ranking.ContextDictionaries = map[string][]string{"roadmap": {"roadmap", "release"}}
	cfg.Ranking.ContextFallback = "roadmap"
	cfg.Profiles.RoleCategories = map[string][]string{"ADMIN": {"Ops"}}
	cfg.Profiles.TTL = time.Hour

	rc := cfg.RankingEngineConfig()
	if rc.Scoring.CategoryBonus != 0.5 || rc.Diversity.MaxResults != 20 || rc.Profile.TTL != time.Hour {
		t.Errorf("overrides not applied: %+v", rc)
	}
	if _, ok := rc.Context.Dictionaries["dashboard"]; ok {
		t.Error("configured dictionaries should replace the defaults")
	}
	if got := rc.Profile.RoleCategories[ranking.RoleAdmin]; !reflect.DeepEqual(got, []string{"Ops"}) {
		t.Errorf("admin categories = %v", got)
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"ranking invalid", func(c *Config) { c.Ranking.PopularityDivisor = 0 }, "ranking config is invalid"},
		{"unknown fallback", func(c *Config) { c.Ranking.ContextFallback = "nowhere" }, "fallback"},
		{"bad cron", func(c *Config) { c.Profiles.EngagementRefreshSchedule = "every tuesday" }, "PROFILE_ENGAGEMENT_REFRESH"},
		{"zero janitor", func(c *Config) { c.Profiles.JanitorInterval = 0 }, "PROFILE_JANITOR_INTERVAL"},
		{"bad backend", func(c *Config) { c.Events.Enabled = true; c.Events.Backend = "kafka" }, "EVENTS_BACKEND"},
		{"nats without url", func(c *Config) {
			c.Events.Enabled = true
			c.Events.Backend = "nats"
			c.Events.NATSURL = ""
		}, "NATS_URL"},
		{"dedup zero capacity", func(c *Config) { c.Events.Enabled = true; c.Events.DedupCapacity = 0 }, "EVENTS_DEDUP_CAPACITY"},
		{"zero breaker", func(c *Config) { c.Events.Enabled = true; c.Events.BreakerMaxFailures = 0 }, "EVENTS_BREAKER_MAX_FAILURES"},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"zero body limit", func(c *Config) { c.Security.MaxBodyBytes = 0 }, "MAX_BODY_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"events disabled ignores backend", func(c *Config) { c.Events.Backend = "kafka" }},
		{"memory backend", func(c *Config) { c.Events.Enabled = true }},
		{"embedded nats", func(c *Config) {
			c.Events.Enabled = true
			c.Events.Backend = "nats"
			c.Events.NATSURL = ""
			c.Events.EmbeddedServer = true
		}},
		{"cron descriptor", func(c *Config) { c.Profiles.EngagementRefreshSchedule = "@every 6h" }},
		{"rate limit disabled", func(c *Config) { c.Security.RateLimitDisabled = true; c.Security.RateLimitReqs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := s.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", got)
	}
}
