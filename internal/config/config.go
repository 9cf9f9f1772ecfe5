// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/suggestrank/internal/logging"
	"github.com/tomtom215/suggestrank/internal/ranking"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Ranking  RankingConfig  `koanf:"ranking"`
	Profiles ProfilesConfig `koanf:"profiles"`
	Events   EventsConfig   `koanf:"events"`
	Security SecurityConfig `koanf:"security"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ToLoggingConfig converts to the logging package configuration.
func (l LoggingConfig) ToLoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// RankingConfig holds the scoring, diversity, trending and context tunables.
type RankingConfig struct {
	PopularityDivisor    float64  `koanf:"popularity_divisor"`
	PopularityCap        float64  `koanf:"popularity_cap"`
	CategoryBonus        float64  `koanf:"category_bonus"`
	KeywordWeight        float64  `koanf:"keyword_weight"`
	KeywordCap           float64  `koanf:"keyword_cap"`
	RecentDays           float64  `koanf:"recent_days"`
	RecentBonus          float64  `koanf:"recent_bonus"`
	FreshDays            float64  `koanf:"fresh_days"`
	FreshBonus           float64  `koanf:"fresh_bonus"`
	OpenStatusBonus      float64  `koanf:"open_status_bonus"`
	CommentDivisor       float64  `koanf:"comment_divisor"`
	CommentCap           float64  `koanf:"comment_cap"`
	SimilarUpvoteBonus   float64  `koanf:"similar_upvote_bonus"`
	SimilarOtherPenalty  float64  `koanf:"similar_other_penalty"`
	HighEngagementBonus  float64  `koanf:"high_engagement_bonus"`
	LowEngagementPenalty float64  `koanf:"low_engagement_penalty"`
	SimilarityTerms      []string `koanf:"similarity_terms"`

	GuaranteedSlots int `koanf:"guaranteed_slots"`
	MaxResults      int `koanf:"max_results"`

	TrendingLimit         int     `koanf:"trending_limit"`
	TrendingCommentWeight int     `koanf:"trending_comment_weight"`
	TrendingMinAgeDays    float64 `koanf:"trending_min_age_days"`

	ContextDictionaries map[string][]string `koanf:"context_dictionaries"`
	ContextFallback     string              `koanf:"context_fallback"`
	ContextMaxResults   int                 `koanf:"context_max_results"`
}

// ProfilesConfig holds profile derivation and cache configuration.
type ProfilesConfig struct {
	HighEngagementThreshold   int                 `koanf:"high_engagement_threshold"`
	MediumEngagementThreshold int                 `koanf:"medium_engagement_threshold"`
	KeywordMinLength          int                 `koanf:"keyword_min_length"`
	RoleCategories            map[string][]string `koanf:"role_categories"`
	DefaultCategories         []string            `koanf:"default_categories"`
	MaxHistory                int                 `koanf:"max_history"`
	Capacity                  int                 `koanf:"capacity"`
	TTL                       time.Duration       `koanf:"ttl"`

	// JanitorInterval is how often expired profiles are swept.
	JanitorInterval time.Duration `koanf:"janitor_interval"`

	// EngagementRefreshSchedule is a cron spec for recomputing engagement of
	// cached profiles. Empty disables it.
	EngagementRefreshSchedule string `koanf:"engagement_refresh_schedule"`
}

// EventsConfig holds interaction pipeline configuration.
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Backend string `koanf:"backend"` // memory or nats

	NATSURL        string `koanf:"nats_url"`
	EmbeddedServer bool   `koanf:"embedded_server"`
	StoreDir       string `koanf:"store_dir"`
	DurableName    string `koanf:"durable_name"`
	QueueGroup     string `koanf:"queue_group"`

	Topic       string `koanf:"topic"`
	PoisonTopic string `koanf:"poison_topic"`

	RetryCount           int           `koanf:"retry_count"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	ThrottlePerSecond    int           `koanf:"throttle_per_second"`
	DedupEnabled         bool          `koanf:"dedup_enabled"`
	DedupTTL             time.Duration `koanf:"dedup_ttl"`
	DedupCapacity        int           `koanf:"dedup_capacity"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`

	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// SecurityConfig holds HTTP hardening configuration.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// RankingEngineConfig assembles the engine configuration from the ranking
// and profiles sections.
func (c *Config) RankingEngineConfig() *ranking.Config {
	r, p := c.Ranking, c.Profiles

	cfg := ranking.DefaultConfig()
	cfg.Scoring = ranking.ScoringConfig{
		PopularityDivisor:    r.PopularityDivisor,
		PopularityCap:        r.PopularityCap,
		CategoryBonus:        r.CategoryBonus,
		KeywordWeight:        r.KeywordWeight,
		KeywordCap:           r.KeywordCap,
		RecentDays:           r.RecentDays,
		RecentBonus:          r.RecentBonus,
		FreshDays:            r.FreshDays,
		FreshBonus:           r.FreshBonus,
		OpenStatusBonus:      r.OpenStatusBonus,
		CommentDivisor:       r.CommentDivisor,
		CommentCap:           r.CommentCap,
		SimilarUpvoteBonus:   r.SimilarUpvoteBonus,
		SimilarOtherPenalty:  r.SimilarOtherPenalty,
		HighEngagementBonus:  r.HighEngagementBonus,
		LowEngagementPenalty: r.LowEngagementPenalty,
		SimilarityTerms:      append([]string(nil), r.SimilarityTerms...),
	}
	cfg.Diversity = ranking.DiversityConfig{
		GuaranteedSlots: r.GuaranteedSlots,
		MaxResults:      r.MaxResults,
	}
	cfg.Trending = ranking.TrendingConfig{
		DefaultLimit:  r.TrendingLimit,
		CommentWeight: r.TrendingCommentWeight,
		MinAgeDays:    r.TrendingMinAgeDays,
	}
	if len(r.ContextDictionaries) > 0 {
		cfg.Context.Dictionaries = make(map[string][]string, len(r.ContextDictionaries))
		for name, words := range r.ContextDictionaries {
			cfg.Context.Dictionaries[name] = append([]string(nil), words...)
		}
	}
	cfg.Context.Fallback = r.ContextFallback
	cfg.Context.MaxResults = r.ContextMaxResults

	cfg.Profile.HighEngagementThreshold = p.HighEngagementThreshold
	cfg.Profile.MediumEngagementThreshold = p.MediumEngagementThreshold
	cfg.Profile.KeywordMinLength = p.KeywordMinLength
	if len(p.RoleCategories) > 0 {
		cfg.Profile.RoleCategories = make(map[ranking.Role][]string, len(p.RoleCategories))
		for role, cats := range p.RoleCategories {
			cfg.Profile.RoleCategories[ranking.Role(role)] = append([]string(nil), cats...)
		}
	}
	if len(p.DefaultCategories) > 0 {
		cfg.Profile.DefaultCategories = append([]string(nil), p.DefaultCategories...)
	}
	cfg.Profile.MaxHistory = p.MaxHistory
	cfg.Profile.Capacity = p.Capacity
	cfg.Profile.TTL = p.TTL

	return cfg
}
