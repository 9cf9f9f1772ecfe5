// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package ranking

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains every tunable of the ranking engine. Defaults reproduce
// the reference scoring constants exactly.
type Config struct {
	// Scoring contains the weights and caps of the relevance function.
	Scoring ScoringConfig `json:"scoring"`

	// Profile contains profile derivation and cache parameters.
	Profile ProfileConfig `json:"profile"`

	// Diversity contains parameters for category diversity reranking.
	Diversity DiversityConfig `json:"diversity"`

	// Trending contains parameters for trend ranking.
	Trending TrendingConfig `json:"trending"`

	// Context contains the page-context keyword dictionaries.
	Context ContextConfig `json:"context"`
}

// ScoringConfig contains the weights and caps of the relevance function.
type ScoringConfig struct {
	// PopularityDivisor scales net votes into the popularity term.
	// Default: 100.
	PopularityDivisor float64 `json:"popularity_divisor"`

	// PopularityCap is the upper bound of the popularity term.
	// The term has no lower bound. Default: 0.3.
	PopularityCap float64 `json:"popularity_cap"`

	// CategoryBonus is added when the category is preferred.
	// Default: 0.4.
	CategoryBonus float64 `json:"category_bonus"`

	// KeywordWeight is added per distinct matching profile keyword.
	// Default: 0.1.
	KeywordWeight float64 `json:"keyword_weight"`

	// KeywordCap is the upper bound of the keyword term.
	// Default: 0.3.
	KeywordCap float64 `json:"keyword_cap"`

	// RecentDays is the age (inclusive) that earns RecentBonus.
	// Default: 7.
	RecentDays float64 `json:"recent_days"`

	// RecentBonus is the recency term for very new suggestions.
	// Default: 0.2.
	RecentBonus float64 `json:"recent_bonus"`

	// FreshDays is the age (inclusive) that earns FreshBonus.
	// Default: 30.
	FreshDays float64 `json:"fresh_days"`

	// FreshBonus is the recency term for fairly new suggestions.
	// Default: 0.1.
	FreshBonus float64 `json:"fresh_bonus"`

	// OpenStatusBonus is added for PENDING and UNDER_REVIEW suggestions.
	// Default: 0.1.
	OpenStatusBonus float64 `json:"open_status_bonus"`

	// CommentDivisor scales the comment count into the engagement term.
	// Default: 20.
	CommentDivisor float64 `json:"comment_divisor"`

	// CommentCap is the upper bound of the engagement term.
	// Default: 0.2.
	CommentCap float64 `json:"comment_cap"`

	// SimilarUpvoteBonus applies when the first similar prior vote is an upvote.
	// Default: 0.1.
	SimilarUpvoteBonus float64 `json:"similar_upvote_bonus"`

	// SimilarOtherPenalty is subtracted when the first similar prior vote is
	// anything else. Default: 0.05.
	SimilarOtherPenalty float64 `json:"similar_other_penalty"`

	// HighEngagementBonus is added for highly engaged users.
	// Default: 0.1.
	HighEngagementBonus float64 `json:"high_engagement_bonus"`

	// LowEngagementPenalty is subtracted for users with low engagement.
	// Default: 0.05.
	LowEngagementPenalty float64 `json:"low_engagement_penalty"`

	// SimilarityTerms are the shared words that make two suggestions of
	// different categories similar.
	// Default: dashboard, analytics, feature.
	SimilarityTerms []string `json:"similarity_terms"`
}

// ProfileConfig contains profile derivation and cache parameters.
type ProfileConfig struct {
	// HighEngagementThreshold: more interactions than this is high engagement.
	// Default: 50.
	HighEngagementThreshold int `json:"high_engagement_threshold"`

	// MediumEngagementThreshold: more interactions than this is medium engagement.
	// Default: 20.
	MediumEngagementThreshold int `json:"medium_engagement_threshold"`

	// KeywordMinLength is the shortest keyword kept, in characters.
	// Default: 4.
	KeywordMinLength int `json:"keyword_min_length"`

	// RoleCategories seeds preferred categories per role.
	RoleCategories map[Role][]string `json:"role_categories"`

	// DefaultCategories seeds preferred categories for unknown roles.
	// Default: General.
	DefaultCategories []string `json:"default_categories"`

	// MaxHistory bounds each retained behavior list (votes, comments, views).
	// The most recent entries are kept. Default: 500.
	MaxHistory int `json:"max_history"`

	// Capacity is the maximum number of cached profiles.
	// Default: 10000.
	Capacity int `json:"capacity"`

	// TTL is how long a profile lives after its last write.
	// Default: 24h.
	TTL time.Duration `json:"ttl"`
}

// DiversityConfig contains parameters for category diversity reranking.
type DiversityConfig struct {
	// GuaranteedSlots are filled by score alone before category
	// repetition is restricted. Default: 5.
	GuaranteedSlots int `json:"guaranteed_slots"`

	// MaxResults is the length of the personalized list.
	// Default: 10.
	MaxResults int `json:"max_results"`
}

// TrendingConfig contains parameters for trend ranking.
type TrendingConfig struct {
	// DefaultLimit applies when the caller passes a non-positive limit.
	// Default: 5.
	DefaultLimit int `json:"default_limit"`

	// CommentWeight multiplies the comment count in the velocity.
	// Default: 2.
	CommentWeight int `json:"comment_weight"`

	// MinAgeDays is the floor of the age divisor.
	// Default: 1.
	MinAgeDays float64 `json:"min_age_days"`
}

// ContextConfig contains the page-context keyword dictionaries.
type ContextConfig struct {
	// Dictionaries maps a context name to its keywords.
	Dictionaries map[string][]string `json:"dictionaries"`

	// Fallback is the dictionary used for unknown contexts.
	// Default: dashboard.
	Fallback string `json:"fallback"`

	// MaxResults caps the contextual list.
	// Default: 5.
	MaxResults int `json:"max_results"`
}

// DefaultConfig returns a Config holding the reference constants.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			PopularityDivisor:    100,
			PopularityCap:        0.3,
			CategoryBonus:        0.4,
			KeywordWeight:        0.1,
			KeywordCap:           0.3,
			RecentDays:           7,
			RecentBonus:          0.2,
			FreshDays:            30,
			FreshBonus:           0.1,
			OpenStatusBonus:      0.1,
			CommentDivisor:       20,
			CommentCap:           0.2,
			SimilarUpvoteBonus:   0.1,
			SimilarOtherPenalty:  0.05,
			HighEngagementBonus:  0.1,
			LowEngagementPenalty: 0.05,
			SimilarityTerms:      []string{"dashboard", "analytics", "feature"},
		},
		Profile: ProfileConfig{
			HighEngagementThreshold:   50,
			MediumEngagementThreshold: 20,
			KeywordMinLength:          4,
			RoleCategories: map[Role][]string{
				RoleAdmin:   {"Analytics", "Dashboard", "Features", "Performance"},
				RoleUser:    {"UX", "Features", "Interface"},
				RolePremium: {"Advanced Features", "Customization", "Analytics"},
			},
			DefaultCategories: []string{DefaultCategory},
			MaxHistory:        500,
			Capacity:          10000,
			TTL:               24 * time.Hour,
		},
		Diversity: DiversityConfig{
			GuaranteedSlots: 5,
			MaxResults:      10,
		},
		Trending: TrendingConfig{
			DefaultLimit:  5,
			CommentWeight: 2,
			MinAgeDays:    1,
		},
		Context: ContextConfig{
			Dictionaries: map[string][]string{
				"dashboard":  {"dashboard", "analytics", "chart", "metric", "kpi", "widget"},
				"portfolio":  {"portfolio", "project", "case study", "showcase", "work"},
				"insights":   {"insight", "data", "analysis", "trend", "pattern"},
				"services":   {"service", "feature", "tool", "solution", "platform"},
				"comparison": {"compare", "versus", "vs", "difference", "alternative"},
			},
			Fallback:   "dashboard",
			MaxResults: 5,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	s := c.Scoring
	if s.PopularityDivisor <= 0 {
		return fmt.Errorf("scoring.popularity_divisor must be positive, got %f", s.PopularityDivisor)
	}
	if s.CommentDivisor <= 0 {
		return fmt.Errorf("scoring.comment_divisor must be positive, got %f", s.CommentDivisor)
	}
	for name, v := range map[string]float64{
		"popularity_cap":         s.PopularityCap,
		"category_bonus":         s.CategoryBonus,
		"keyword_weight":         s.KeywordWeight,
		"keyword_cap":            s.KeywordCap,
		"recent_bonus":           s.RecentBonus,
		"fresh_bonus":            s.FreshBonus,
		"open_status_bonus":      s.OpenStatusBonus,
		"comment_cap":            s.CommentCap,
		"similar_upvote_bonus":   s.SimilarUpvoteBonus,
		"similar_other_penalty":  s.SimilarOtherPenalty,
		"high_engagement_bonus":  s.HighEngagementBonus,
		"low_engagement_penalty": s.LowEngagementPenalty,
	} {
		if v < 0 {
			return fmt.Errorf("scoring.%s must be non-negative, got %f", name, v)
		}
	}
	if s.RecentDays < 0 || s.FreshDays < s.RecentDays {
		return fmt.Errorf("scoring windows must satisfy 0 <= recent_days <= fresh_days, got %f and %f",
			s.RecentDays, s.FreshDays)
	}

	p := c.Profile
	if p.MediumEngagementThreshold < 0 {
		return fmt.Errorf("profile.medium_engagement_threshold must be non-negative, got %d", p.MediumEngagementThreshold)
	}
	if p.HighEngagementThreshold < p.MediumEngagementThreshold {
		return fmt.Errorf("profile.high_engagement_threshold must be >= profile.medium_engagement_threshold, got %d < %d",
			p.HighEngagementThreshold, p.MediumEngagementThreshold)
	}
	if p.KeywordMinLength < 1 {
		return fmt.Errorf("profile.keyword_min_length must be positive, got %d", p.KeywordMinLength)
	}
	if p.MaxHistory < 1 {
		return fmt.Errorf("profile.max_history must be positive, got %d", p.MaxHistory)
	}
	if p.Capacity < 1 {
		return fmt.Errorf("profile.capacity must be positive, got %d", p.Capacity)
	}
	if p.TTL <= 0 {
		return fmt.Errorf("profile.ttl must be positive, got %v", p.TTL)
	}

	if c.Diversity.MaxResults < 1 {
		return fmt.Errorf("diversity.max_results must be positive, got %d", c.Diversity.MaxResults)
	}
	if c.Diversity.GuaranteedSlots < 0 {
		return fmt.Errorf("diversity.guaranteed_slots must be non-negative, got %d", c.Diversity.GuaranteedSlots)
	}

	if c.Trending.DefaultLimit < 1 {
		return fmt.Errorf("trending.default_limit must be positive, got %d", c.Trending.DefaultLimit)
	}
	if c.Trending.MinAgeDays <= 0 {
		return fmt.Errorf("trending.min_age_days must be positive, got %f", c.Trending.MinAgeDays)
	}

	if c.Context.MaxResults < 1 {
		return fmt.Errorf("context.max_results must be positive, got %d", c.Context.MaxResults)
	}
	if _, ok := c.Context.Dictionaries[c.Context.Fallback]; !ok {
		return fmt.Errorf("context.fallback %q has no dictionary", c.Context.Fallback)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c

	out.Scoring.SimilarityTerms = append([]string(nil), c.Scoring.SimilarityTerms...)
	out.Profile.DefaultCategories = append([]string(nil), c.Profile.DefaultCategories...)

	out.Profile.RoleCategories = make(map[Role][]string, len(c.Profile.RoleCategories))
	for role, cats := range c.Profile.RoleCategories {
		out.Profile.RoleCategories[role] = append([]string(nil), cats...)
	}

	out.Context.Dictionaries = make(map[string][]string, len(c.Context.Dictionaries))
	for name, words := range c.Context.Dictionaries {
		out.Context.Dictionaries[name] = append([]string(nil), words...)
	}

	return &out
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type profileAlias ProfileConfig
	return json.Marshal(&struct {
		Scoring   ScoringConfig   `json:"scoring"`
		Profile   any             `json:"profile"`
		Diversity DiversityConfig `json:"diversity"`
		Trending  TrendingConfig  `json:"trending"`
		Context   ContextConfig   `json:"context"`
	}{
		Scoring: c.Scoring,
		Profile: &struct {
			*profileAlias
			TTL string `json:"ttl"`
		}{
			profileAlias: (*profileAlias)(&c.Profile),
			TTL:          c.Profile.TTL.String(),
		},
		Diversity: c.Diversity,
		Trending:  c.Trending,
		Context:   c.Context,
	})
}
