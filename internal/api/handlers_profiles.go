// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/suggestrank/internal/events"
	"github.com/tomtom215/suggestrank/internal/logging"
	"github.com/tomtom215/suggestrank/internal/metrics"
	"github.com/tomtom215/suggestrank/internal/models"
)

// GetProfile handles GET /api/v1/profiles/{userID}.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	p, found := h.engine.Profile(userID)
	if !found {
		respondError(w, http.StatusNotFound, CodeNotFound, "No cached profile for user", nil)
		return
	}
	respondSuccess(w, http.StatusOK, p, start, nil)
}

// DeleteProfile handles DELETE /api/v1/profiles/{userID}. The next ranking
// request for the user rebuilds the profile from the history it supplies.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	removed := h.engine.InvalidateProfile(userID)
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"removed": removed,
	}, start, nil)
}

// RecordInteraction handles POST /api/v1/profiles/{userID}/events.
//
// With a publisher configured the event is queued on the bus (202). When
// publishing fails it is applied inline. Inline application answers 200
// when a cached profile was updated and 202 with applied=false when the
// user has no profile yet; such events are dropped, since profiles are only
// created by ranking requests.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req models.InteractionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	eventID := req.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	event := req.ToEvent()
	ctx := logging.ContextWithUserID(r.Context(), userID)

	result := models.InteractionResult{EventID: eventID, UserID: userID}

	if h.publisher != nil {
		err := h.publisher.PublishInteraction(ctx, eventID, userID, &event)
		if err == nil {
			result.Queued = true
			respondSuccess(w, http.StatusAccepted, result, start, nil)
			return
		}

		reason := "publish_error"
		if errors.Is(err, events.ErrCircuitOpen) {
			reason = "circuit_open"
		}
		metrics.RecordPublishFallback(reason)
		logging.Ctx(ctx).Warn().Err(err).
			Str("event_id", eventID).
			Str("reason", reason).
			Msg("publishing interaction failed, applying inline")
	}

	result.Applied = h.engine.UpdateProfile(ctx, userID, &event)
	status := http.StatusOK
	if !result.Applied {
		status = http.StatusAccepted
	}
	respondSuccess(w, status, result, start, nil)
}
