// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package ranking

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/suggestrank/internal/ranking/keywords"
)

// Status is the workflow state of a suggestion.
type Status string

// Suggestion workflow states.
const (
	StatusPending     Status = "PENDING"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusImplemented Status = "IMPLEMENTED"
	StatusDuplicate   Status = "DUPLICATE"
)

// IsOpen reports whether the suggestion is still awaiting a decision.
// Only open suggestions earn the status bonus and can trend.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusUnderReview
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved,
		StatusRejected, StatusImplemented, StatusDuplicate:
		return true
	}
	return false
}

// Role is the user's account role. Unknown roles are allowed and seed the
// default category set.
type Role string

// Known roles.
const (
	RoleAdmin   Role = "ADMIN"
	RoleUser    Role = "USER"
	RolePremium Role = "PREMIUM"
)

// VoteType is the direction of a vote.
type VoteType string

// Vote directions.
const (
	VoteUp   VoteType = "UPVOTE"
	VoteDown VoteType = "DOWNVOTE"
)

// EngagementLevel buckets a user's interaction volume.
type EngagementLevel string

// Engagement levels.
const (
	EngagementLow    EngagementLevel = "low"
	EngagementMedium EngagementLevel = "medium"
	EngagementHigh   EngagementLevel = "high"
)

// InteractionType identifies the kind of an incremental interaction.
type InteractionType string

// Interaction kinds.
const (
	InteractionVote    InteractionType = "vote"
	InteractionComment InteractionType = "comment"
	InteractionView    InteractionType = "view"
)

// DefaultCategory is used wherever a suggestion carries no category.
const DefaultCategory = "General"

// Suggestion is a read-only snapshot of a user-submitted suggestion.
// The engine never mutates it; derived scores live on copies.
type Suggestion struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Status       Status    `json:"status"`
	NetVotes     int       `json:"net_votes"`
	CommentCount int       `json:"comment_count"`
	Views        int       `json:"views"`
	CreatedAt    time.Time `json:"created_at"`
}

// Text returns the searchable text of the suggestion: title and description
// joined by a single space.
func (s *Suggestion) Text() string {
	return s.Title + " " + s.Description
}

// LowerText returns Text lowercased.
func (s *Suggestion) LowerText() string {
	return strings.ToLower(s.Text())
}

// CategoryOrDefault returns the category, or DefaultCategory when empty.
func (s *Suggestion) CategoryOrDefault() string {
	if s.Category == "" {
		return DefaultCategory
	}
	return s.Category
}

// Normalize fills absent fields once at ingestion: an empty status becomes
// PENDING and negative counters become zero.
func (s *Suggestion) Normalize() {
	if s.Status == "" {
		s.Status = StatusPending
	}
	if s.CommentCount < 0 {
		s.CommentCount = 0
	}
	if s.Views < 0 {
		s.Views = 0
	}
}

// AgeDays returns the fractional number of days between createdAt and now.
// A zero createdAt means the age is unknown and yields +Inf.
func AgeDays(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return math.Inf(1)
	}
	return now.Sub(createdAt).Hours() / 24
}

// User identifies the requester.
type User struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

// VoteEvent is a vote cast by the user. Suggestion may be nil when the voted
// suggestion is no longer known.
type VoteEvent struct {
	Suggestion *Suggestion `json:"suggestion,omitempty"`
	VoteType   VoteType    `json:"vote_type"`
	CreatedAt  time.Time   `json:"created_at,omitempty"`
}

// CommentEvent is a comment written by the user.
type CommentEvent struct {
	Suggestion *Suggestion `json:"suggestion,omitempty"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"created_at,omitempty"`
}

// ViewEvent records that the user opened a suggestion. Views are carried
// through the profile but do not influence scoring.
type ViewEvent struct {
	SuggestionID int64     `json:"suggestion_id"`
	ViewedAt     time.Time `json:"viewed_at,omitempty"`
}

// Behavior is a user's interaction history.
type Behavior struct {
	Votes     []VoteEvent    `json:"votes"`
	Comments  []CommentEvent `json:"comments"`
	Views     []ViewEvent    `json:"views,omitempty"`
	TimeSpent int64          `json:"time_spent,omitempty"` // seconds
}

// InteractionCount is the number of votes plus comments.
func (b *Behavior) InteractionCount() int {
	return len(b.Votes) + len(b.Comments)
}

// Clone returns a copy whose slices do not alias b's.
func (b *Behavior) Clone() Behavior {
	return Behavior{
		Votes:     append([]VoteEvent(nil), b.Votes...),
		Comments:  append([]CommentEvent(nil), b.Comments...),
		Views:     append([]ViewEvent(nil), b.Views...),
		TimeSpent: b.TimeSpent,
	}
}

// InteractionEvent is a single incremental interaction applied to an
// existing profile.
type InteractionEvent struct {
	Type       InteractionType `json:"type"`
	Suggestion *Suggestion     `json:"suggestion,omitempty"`
	VoteType   VoteType        `json:"vote_type,omitempty"`
	Content    string          `json:"content,omitempty"`
	OccurredAt time.Time       `json:"occurred_at,omitempty"`
}

// StringSet is an unordered set of strings. It serializes as a sorted array.
type StringSet map[string]struct{}

// NewStringSet creates a set holding items.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts v.
func (s StringSet) Add(v string) {
	s[v] = struct{}{}
}

// Contains reports whether v is a member.
func (s StringSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s StringSet) Clone() StringSet {
	out := make(StringSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array into the set.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewStringSet(items...)
	return nil
}

// Profile is a per-user preference summary derived from role and history.
// A published Profile is immutable: updates produce a modified clone.
type Profile struct {
	UserID              int64           `json:"user_id"`
	Role                Role            `json:"role"`
	PreferredCategories StringSet       `json:"preferred_categories"`
	Keywords            StringSet       `json:"keywords"`
	EngagementLevel     EngagementLevel `json:"engagement_level"`
	Behavior            Behavior        `json:"behavior"`
	BuiltAt             time.Time       `json:"built_at"`
	LastUpdated         time.Time       `json:"last_updated"`

	matcher *keywords.Matcher
}

// Clone returns a deep, unsealed copy of the profile.
func (p *Profile) Clone() *Profile {
	return &Profile{
		UserID:              p.UserID,
		Role:                p.Role,
		PreferredCategories: p.PreferredCategories.Clone(),
		Keywords:            p.Keywords.Clone(),
		EngagementLevel:     p.EngagementLevel,
		Behavior:            p.Behavior.Clone(),
		BuiltAt:             p.BuiltAt,
		LastUpdated:         p.LastUpdated,
	}
}

// Seal precomputes the keyword matcher. It must be called before the
// profile is shared; the profile must not be modified afterwards.
func (p *Profile) Seal() *Profile {
	p.matcher = keywords.NewMatcher(p.Keywords.Sorted()...)
	return p
}

// HasCategory reports whether category is one of the preferred categories.
func (p *Profile) HasCategory(category string) bool {
	return p.PreferredCategories.Contains(category)
}

// KeywordMatches counts the distinct profile keywords occurring as
// substrings of text, stopping at limit when limit is positive.
func (p *Profile) KeywordMatches(text string, limit int) int {
	m := p.matcher
	if m == nil {
		m = keywords.NewMatcher(p.Keywords.Sorted()...)
	}
	return m.Count(text, limit)
}

// ScoreBreakdown itemizes the terms of a personalized score.
type ScoreBreakdown struct {
	Popularity      float64 `json:"popularity"`
	Category        float64 `json:"category"`
	Keywords        float64 `json:"keywords"`
	Recency         float64 `json:"recency"`
	Status          float64 `json:"status"`
	Engagement      float64 `json:"engagement"`
	Personalization float64 `json:"personalization"`
	Raw             float64 `json:"raw"`
	Total           float64 `json:"total"`
}

// ScoredSuggestion is a suggestion decorated with its personalized score.
// AIScore and PersonalizedScore always carry the same value.
type ScoredSuggestion struct {
	Suggestion
	AIScore           float64         `json:"ai_score"`
	PersonalizedScore float64         `json:"personalized_score"`
	Breakdown         *ScoreBreakdown `json:"breakdown,omitempty"`
}

// TrendingSuggestion is a suggestion decorated with its trend score.
type TrendingSuggestion struct {
	Suggestion
	TrendScore float64 `json:"trend_score"`
	Velocity   int     `json:"velocity"`
	AgeDays    float64 `json:"age_days"`
}

// ContextualSuggestion is a suggestion decorated with its context relevance.
type ContextualSuggestion struct {
	Suggestion
	ContextualScore int      `json:"contextual_score"`
	Context         string   `json:"context"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// Scorer computes the personalized relevance of a suggestion for a profile.
type Scorer interface {
	// Score returns a value in [0, 1].
	Score(s *Suggestion, p *Profile, now time.Time) float64

	// Explain returns the per-term breakdown behind Score.
	Explain(s *Suggestion, p *Profile, now time.Time) ScoreBreakdown
}

// Reranker post-processes a scored list, e.g. for diversity.
type Reranker interface {
	// Name returns the reranker identifier.
	Name() string

	// Rerank returns the reordered (and possibly truncated) list.
	Rerank(ctx context.Context, items []ScoredSuggestion) []ScoredSuggestion
}

// TrendCalculator ranks open suggestions by recent activity.
type TrendCalculator interface {
	Trending(suggestions []Suggestion, limit int, now time.Time) []TrendingSuggestion
}

// ContextMatcher ranks suggestions by relevance to a named page context.
type ContextMatcher interface {
	Match(suggestions []Suggestion, context string) []ContextualSuggestion
}

// ProfileStore owns the cached profiles. Implementations serialize build and
// update per user and publish immutable snapshots.
type ProfileStore interface {
	// Get returns the cached profile, if any.
	Get(userID int64) (*Profile, bool)

	// BuildOrGet returns the cached profile or builds one from history.
	BuildOrGet(user User, history *Behavior) *Profile

	// Update applies an interaction to an existing profile. It reports
	// false when no profile is cached for the user.
	Update(userID int64, event *InteractionEvent) bool

	// Invalidate drops the cached profile so the next request rebuilds it.
	Invalidate(userID int64) bool

	// CleanupExpired removes expired profiles and returns how many.
	CleanupExpired() int

	// RefreshEngagement recomputes engagement for all cached profiles from
	// their retained history and returns how many changed.
	RefreshEngagement() int

	// Len returns the number of cached profiles.
	Len() int
}
