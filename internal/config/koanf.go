// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/suggestrank/config.yaml",
	"/etc/suggestrank/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file path.
const DotEnvPathEnvVar = "DOTENV_PATH"

func defaultConfig() *Config {
	rc := ranking.DefaultConfig()
	s := rc.Scoring

	roles := make(map[string][]string, len(rc.Profile.RoleCategories))
	for role, cats := range rc.Profile.RoleCategories {
		roles[string(role)] = cats
	}

	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Ranking: RankingConfig{
			PopularityDivisor:     s.PopularityDivisor,
			PopularityCap:         s.PopularityCap,
			CategoryBonus:         s.CategoryBonus,
			KeywordWeight:         s.KeywordWeight,
			KeywordCap:            s.KeywordCap,
			RecentDays:            s.RecentDays,
			RecentBonus:           s.RecentBonus,
			FreshDays:             s.FreshDays,
			FreshBonus:            s.FreshBonus,
			OpenStatusBonus:       s.OpenStatusBonus,
			CommentDivisor:        s.CommentDivisor,
			CommentCap:            s.CommentCap,
			SimilarUpvoteBonus:    s.SimilarUpvoteBonus,
			SimilarOtherPenalty:   s.SimilarOtherPenalty,
			HighEngagementBonus:   s.HighEngagementBonus,
			LowEngagementPenalty:  s.LowEngagementPenalty,
			SimilarityTerms:       s.SimilarityTerms,
			GuaranteedSlots:       rc.Diversity.GuaranteedSlots,
			MaxResults:            rc.Diversity.MaxResults,
			TrendingLimit:         rc.Trending.DefaultLimit,
			TrendingCommentWeight: rc.Trending.CommentWeight,
			TrendingMinAgeDays:    rc.Trending.MinAgeDays,
			ContextDictionaries:   rc.Context.Dictionaries,
			ContextFallback:       rc.Context.Fallback,
			ContextMaxResults:     rc.Context.MaxResults,
		},
		Profiles: ProfilesConfig{
			HighEngagementThreshold:   rc.Profile.HighEngagementThreshold,
			MediumEngagementThreshold: rc.Profile.MediumEngagementThreshold,
			KeywordMinLength:          rc.Profile.KeywordMinLength,
			RoleCategories:            roles,
			DefaultCategories:         rc.Profile.DefaultCategories,
			MaxHistory:                rc.Profile.MaxHistory,
			Capacity:                  rc.Profile.Capacity,
			TTL:                       rc.Profile.TTL,
			JanitorInterval:           5 * time.Minute,
			EngagementRefreshSchedule: "", // disabled
		},
		Events: EventsConfig{
			Enabled:              false,
			Backend:              "memory",
			NATSURL:              "nats://127.0.0.1:4222",
			EmbeddedServer:       false,
			StoreDir:             "/data/nats/jetstream",
			DurableName:          "suggestrank-profiles",
			QueueGroup:           "suggestrank",
			Topic:                "suggestion.interactions",
			PoisonTopic:          "suggestion.interactions.poison",
			RetryCount:           3,
			RetryInitialInterval: 100 * time.Millisecond,
			ThrottlePerSecond:    0, // unlimited
			DedupEnabled:         true,
			DedupTTL:             10 * time.Minute,
			DedupCapacity:        100000,
			CloseTimeout:         30 * time.Second,
			BreakerMaxFailures:   5,
			BreakerTimeout:       30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   300,
			RateLimitWindow: time.Minute,
			MaxBodyBytes:    4 << 20, // 4MB
		},
	}
}

// Load reads configuration from defaults, .env, the YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return LoadFile(findConfigFile())
}

// LoadFile is Load without the .env step and with an explicit YAML path.
// An empty path skips the file layer.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns CONFIG_PATH if it exists, else the first existing
// default path, else "".
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"ranking.similarity_terms",
	"profiles.default_categories",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Ranking
	"ranking_popularity_divisor":      "ranking.popularity_divisor",
	"ranking_popularity_cap":          "ranking.popularity_cap",
	"ranking_category_bonus":          "ranking.category_bonus",
	"ranking_keyword_weight":          "ranking.keyword_weight",
	"ranking_keyword_cap":             "ranking.keyword_cap",
	"ranking_recent_days":             "ranking.recent_days",
	"ranking_recent_bonus":            "ranking.recent_bonus",
	"ranking_fresh_days":              "ranking.fresh_days",
	"ranking_fresh_bonus":             "ranking.fresh_bonus",
	"ranking_open_status_bonus":       "ranking.open_status_bonus",
	"ranking_comment_divisor":         "ranking.comment_divisor",
	"ranking_comment_cap":             "ranking.comment_cap",
	"ranking_similar_upvote_bonus":    "ranking.similar_upvote_bonus",
	"ranking_similar_other_penalty":   "ranking.similar_other_penalty",
	"ranking_high_engagement_bonus":   "ranking.high_engagement_bonus",
	"ranking_low_engagement_penalty":  "ranking.low_engagement_penalty",
	"ranking_similarity_terms":        "ranking.similarity_terms",
	"ranking_guaranteed_slots":        "ranking.guaranteed_slots",
	"ranking_max_results":             "ranking.max_results",
	"ranking_trending_limit":          "ranking.trending_limit",
	"ranking_trending_comment_weight": "ranking.trending_comment_weight",
	"ranking_trending_min_age_days":   "ranking.trending_min_age_days",
	"ranking_context_fallback":        "ranking.context_fallback",
	"ranking_context_max_results":     "ranking.context_max_results",

	// Profiles
	"profile_high_engagement_threshold":   "profiles.high_engagement_threshold",
	"profile_medium_engagement_threshold": "profiles.medium_engagement_threshold",
	"profile_keyword_min_length":          "profiles.keyword_min_length",
	"profile_default_categories":          "profiles.default_categories",
	"profile_max_history":                 "profiles.max_history",
	"profile_cache_capacity":              "profiles.capacity",
	"profile_ttl":                         "profiles.ttl",
	"profile_janitor_interval":            "profiles.janitor_interval",
	"profile_engagement_refresh":          "profiles.engagement_refresh_schedule",

	// Events
	"events_enabled":              "events.enabled",
	"events_backend":              "events.backend",
	"nats_url":                    "events.nats_url",
	"nats_embedded":               "events.embedded_server",
	"nats_store_dir":              "events.store_dir",
	"nats_durable_name":           "events.durable_name",
	"nats_queue_group":            "events.queue_group",
	"events_topic":                "events.topic",
	"events_poison_topic":         "events.poison_topic",
	"events_retry_count":          "events.retry_count",
	"events_retry_interval":       "events.retry_initial_interval",
	"events_throttle":             "events.throttle_per_second",
	"events_dedup_enabled":        "events.dedup_enabled",
	"events_dedup_ttl":            "events.dedup_ttl",
	"events_dedup_capacity":       "events.dedup_capacity",
	"events_close_timeout":        "events.close_timeout",
	"events_breaker_max_failures": "events.breaker_max_failures",
	"events_breaker_timeout":      "events.breaker_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"max_body_bytes":      "security.max_body_bytes",
}

// envTransformFunc maps allow-listed environment variables to config paths;
// everything else is dropped.
//
//	HTTP_PORT           -> server.port
//	RANKING_MAX_RESULTS -> ranking.max_results
//	PROFILE_TTL         -> profiles.ttl
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile calls callback whenever the file at path changes. The
// caller serializes reloads. The returned function stops watching.
func WatchConfigFile(path string, callback func()) (func() error, error) {
	fp := file.Provider(path)
	err := fp.Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
	if err != nil {
		return nil, err
	}
	return fp.Unwatch, nil
}

// ConfigFile returns the YAML file Load reads, or "" when none exists.
func ConfigFile() string {
	return findConfigFile()
}
