// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Serializer encodes interaction messages as JSON.
type Serializer struct{}

// NewSerializer creates a new serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Marshal validates and encodes msg.
func (s *Serializer) Marshal(msg *InteractionMessage) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal interaction: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates data. Failures wrap ErrInvalidMessage.
func (s *Serializer) Unmarshal(data []byte) (*InteractionMessage, error) {
	var msg InteractionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
