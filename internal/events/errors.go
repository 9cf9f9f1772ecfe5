// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import "errors"

var (
	// ErrCircuitOpen is returned by PublishInteraction while the publish
	// circuit breaker rejects requests.
	ErrCircuitOpen = errors.New("events: publish circuit breaker open")

	// ErrPublisherClosed is returned after Close.
	ErrPublisherClosed = errors.New("events: publisher is closed")

	// ErrInvalidMessage marks messages that can never be applied.
	ErrInvalidMessage = errors.New("events: invalid interaction message")

	// ErrInvalidConfig is returned when configuration is invalid.
	ErrInvalidConfig = errors.New("events: invalid configuration")
)
