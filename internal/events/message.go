// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/validation"
)

// InteractionMessage is the wire form of a profile update.
type InteractionMessage struct {
	EventID     string                  `json:"event_id" validate:"required,uuid"`
	UserID      int64                   `json:"user_id" validate:"required,gt=0"`
	Type        ranking.InteractionType `json:"type" validate:"required,interaction_type"`
	VoteType    ranking.VoteType        `json:"vote_type,omitempty" validate:"required_if=Type vote,excluded_unless=Type vote,omitempty,vote_type"`
	Content     string                  `json:"content,omitempty"`
	Suggestion  *ranking.Suggestion     `json:"suggestion" validate:"required"`
	OccurredAt  time.Time               `json:"occurred_at,omitempty"`
	PublishedAt time.Time               `json:"published_at"`
}

// NewInteractionMessage builds a message for event. An empty eventID gets a
// random UUID.
func NewInteractionMessage(eventID string, userID int64, event *ranking.InteractionEvent) *InteractionMessage {
	if eventID == "" {
		eventID = uuid.NewString()
	}
	msg := &InteractionMessage{
		EventID:     eventID,
		UserID:      userID,
		PublishedAt: time.Now().UTC(),
	}
	if event != nil {
		msg.Type = event.Type
		msg.VoteType = event.VoteType
		msg.Content = event.Content
		msg.Suggestion = event.Suggestion
		msg.OccurredAt = event.OccurredAt
	}
	return msg
}

// Validate checks required fields and enumerations.
func (m *InteractionMessage) Validate() error {
	if verr := validation.ValidateStruct(m); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidMessage, verr.Error())
	}
	return nil
}

// ToEvent returns the domain event carried by the message.
func (m *InteractionMessage) ToEvent() *ranking.InteractionEvent {
	return &ranking.InteractionEvent{
		Type:       m.Type,
		Suggestion: m.Suggestion,
		VoteType:   m.VoteType,
		Content:    m.Content,
		OccurredAt: m.OccurredAt,
	}
}
