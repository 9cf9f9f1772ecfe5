// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package models

import (
	"time"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

// MaxSuggestionsPerRequest bounds the candidate list of a single request.
const MaxSuggestionsPerRequest = 10000

// SuggestionInput is a candidate suggestion as submitted by a client.
type SuggestionInput struct {
	ID           int64          `json:"id" validate:"gte=0"`
	Title        string         `json:"title" validate:"max=1000"`
	Description  string         `json:"description" validate:"max=20000"`
	Category     string         `json:"category" validate:"max=200"`
	Status       ranking.Status `json:"status" validate:"omitempty,suggestion_status"`
	NetVotes     int            `json:"net_votes"`
	CommentCount int            `json:"comment_count" validate:"gte=0"`
	Views        int            `json:"views" validate:"gte=0"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ToSuggestion converts the input to a normalized domain suggestion.
func (in *SuggestionInput) ToSuggestion() ranking.Suggestion {
	s := ranking.Suggestion{
		ID:           in.ID,
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Status:       in.Status,
		NetVotes:     in.NetVotes,
		CommentCount: in.CommentCount,
		Views:        in.Views,
		CreatedAt:    in.CreatedAt,
	}
	s.Normalize()
	return s
}

// ToSuggestions converts a slice of inputs.
func ToSuggestions(in []SuggestionInput) []ranking.Suggestion {
	out := make([]ranking.Suggestion, len(in))
	for i := range in {
		out[i] = in[i].ToSuggestion()
	}
	return out
}

// UserInput identifies the user being ranked for.
type UserInput struct {
	ID   int64        `json:"id" validate:"required,gt=0"`
	Role ranking.Role `json:"role" validate:"max=64"`
}

// VoteInput is a historical vote.
type VoteInput struct {
	Suggestion *SuggestionInput `json:"suggestion"`
	VoteType   ranking.VoteType `json:"vote_type" validate:"required,vote_type"`
	CreatedAt  time.Time        `json:"created_at"`
}

// CommentInput is a historical comment.
type CommentInput struct {
	Suggestion *SuggestionInput `json:"suggestion"`
	Content    string           `json:"content" validate:"max=20000"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ViewInput is a historical view.
type ViewInput struct {
	SuggestionID int64     `json:"suggestion_id" validate:"gte=0"`
	ViewedAt     time.Time `json:"viewed_at"`
}

// BehaviorInput is a user's interaction history.
type BehaviorInput struct {
	Votes     []VoteInput    `json:"votes" validate:"dive"`
	Comments  []CommentInput `json:"comments" validate:"dive"`
	Views     []ViewInput    `json:"views" validate:"dive"`
	TimeSpent int64          `json:"time_spent" validate:"gte=0"`
}

// ToBehavior converts the input to a domain behavior.
func (in *BehaviorInput) ToBehavior() ranking.Behavior {
	b := ranking.Behavior{
		Votes:     make([]ranking.VoteEvent, 0, len(in.Votes)),
		Comments:  make([]ranking.CommentEvent, 0, len(in.Comments)),
		Views:     make([]ranking.ViewEvent, 0, len(in.Views)),
		TimeSpent: in.TimeSpent,
	}
	for _, v := range in.Votes {
		b.Votes = append(b.Votes, ranking.VoteEvent{
			Suggestion: suggestionPtr(v.Suggestion),
			VoteType:   v.VoteType,
			CreatedAt:  v.CreatedAt,
		})
	}
	for _, c := range in.Comments {
		b.Comments = append(b.Comments, ranking.CommentEvent{
			Suggestion: suggestionPtr(c.Suggestion),
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
		})
	}
	for _, v := range in.Views {
		b.Views = append(b.Views, ranking.ViewEvent{SuggestionID: v.SuggestionID, ViewedAt: v.ViewedAt})
	}
	return b
}

func suggestionPtr(in *SuggestionInput) *ranking.Suggestion {
	if in == nil {
		return nil
	}
	s := in.ToSuggestion()
	return &s
}

// PersonalizedRequest is the body of POST /api/v1/suggestions/personalized.
// A nil Behavior ranks with empty history.
type PersonalizedRequest struct {
	User        UserInput         `json:"user"`
	Suggestions []SuggestionInput `json:"suggestions" validate:"max=10000,dive"`
	Behavior    *BehaviorInput    `json:"behavior"`
	Explain     bool              `json:"explain"`
}

// TrendingRequest is the body of POST /api/v1/suggestions/trending.
// A limit of zero uses the configured default.
type TrendingRequest struct {
	Suggestions []SuggestionInput `json:"suggestions" validate:"max=10000,dive"`
	Limit       int               `json:"limit" validate:"gte=0,lte=1000"`
}

// ContextualRequest is the body of POST /api/v1/suggestions/contextual.
// Unknown or empty contexts fall back to the default dictionary.
type ContextualRequest struct {
	Suggestions []SuggestionInput `json:"suggestions" validate:"max=10000,dive"`
	Context     string            `json:"context" validate:"max=100"`
}

// InteractionRequest is the body of POST /api/v1/profiles/{userID}/events.
// VoteType is required for votes and rejected for other types.
type InteractionRequest struct {
	EventID    string                  `json:"event_id" validate:"omitempty,uuid"`
	Type       ranking.InteractionType `json:"type" validate:"required,interaction_type"`
	VoteType   ranking.VoteType        `json:"vote_type" validate:"required_if=Type vote,excluded_unless=Type vote,omitempty,vote_type"`
	Content    string                  `json:"content" validate:"max=20000"`
	Suggestion *SuggestionInput        `json:"suggestion" validate:"required"`
	OccurredAt time.Time               `json:"occurred_at"`
}

// ToEvent converts the request to a domain interaction event.
func (r *InteractionRequest) ToEvent() ranking.InteractionEvent {
	return ranking.InteractionEvent{
		Type:       r.Type,
		Suggestion: suggestionPtr(r.Suggestion),
		VoteType:   r.VoteType,
		Content:    r.Content,
		OccurredAt: r.OccurredAt,
	}
}

// InteractionResult reports what happened to a submitted event. Applied is
// false when the user has no cached profile. Queued is true when the event
// was handed to the event bus instead of being applied inline.
type InteractionResult struct {
	EventID string `json:"event_id"`
	UserID  int64  `json:"user_id"`
	Applied bool   `json:"applied"`
	Queued  bool   `json:"queued"`
}
