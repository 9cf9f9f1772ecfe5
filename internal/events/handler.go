// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"context"
	"errors"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/suggestrank/internal/logging"
	"github.com/tomtom215/suggestrank/internal/metrics"
	"github.com/tomtom215/suggestrank/internal/ranking"
)

// ProfileUpdater applies interactions to cached profiles.
// *ranking.Engine satisfies it.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID int64, event *ranking.InteractionEvent) bool
}

// InteractionHandler consumes interaction messages.
type InteractionHandler struct {
	updater    ProfileUpdater
	serializer *Serializer
	logger     zerolog.Logger
}

// NewInteractionHandler creates a handler applying messages to updater.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewInteractionHandler(updater ProfileUpdater, logger zerolog.Logger) *InteractionHandler {
	return &InteractionHandler{
		updater:    updater,
		serializer: NewSerializer(),
		logger:     logger,
	}
}

// Handle implements message.NoPublishHandlerFunc. Undecodable messages
// return an error wrapping ErrInvalidMessage and end up on the poison
// queue. Messages for unknown profiles are acknowledged.
func (h *InteractionHandler) Handle(msg *message.Message) error {
	start := time.Now()

	im, err := h.serializer.Unmarshal(msg.Payload)
	if err != nil {
		metrics.RecordInteractionConsumed("unknown", "invalid", time.Since(start))
		h.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("rejecting interaction message")
		return err
	}

	ctx := logging.ContextWithUserID(msg.Context(), im.UserID)
	ctx = logging.ContextWithRequestID(ctx, im.EventID)

	applied := h.updater.UpdateProfile(ctx, im.UserID, im.ToEvent())
	if ctx.Err() != nil && !applied {
		// Context cancellation, let the message be redelivered.
		return ctx.Err()
	}

	result := "applied"
	if !applied {
		result = "unknown_profile"
	}
	metrics.RecordInteractionConsumed(string(im.Type), result, time.Since(start))

	logging.Ctx(ctx).Debug().
		Str("type", string(im.Type)).
		Bool("applied", applied).
		Msg("interaction consumed")
	return nil
}

// IsPermanent reports whether err can never succeed on retry.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrInvalidMessage)
}
