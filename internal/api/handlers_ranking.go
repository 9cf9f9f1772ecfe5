// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/suggestrank/internal/logging"
	"github.com/tomtom215/suggestrank/internal/models"
	"github.com/tomtom215/suggestrank/internal/ranking"
)

// PersonalizedSuggestions handles POST /api/v1/suggestions/personalized.
//
// The user's profile is built from the supplied behavior the first time the
// user is seen and reused while cached, so behavior is ignored for users
// with a cached profile. Returns at most the configured number of items,
// diversified across categories.
func (h *Handler) PersonalizedSuggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PersonalizedRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := logging.ContextWithUserID(r.Context(), req.User.ID)
	user := ranking.User{ID: req.User.ID, Role: req.User.Role}

	var history *ranking.Behavior
	if req.Behavior != nil {
		b := req.Behavior.ToBehavior()
		history = &b
	}

	var opts []ranking.RankOption
	if req.Explain {
		opts = append(opts, ranking.WithExplain())
	}

	results := h.engine.GeneratePersonalizedSuggestions(ctx, &user, models.ToSuggestions(req.Suggestions), history, opts...)

	logging.Ctx(ctx).Debug().
		Int("candidates", len(req.Suggestions)).
		Int("returned", len(results)).
		Bool("explain", req.Explain).
		Msg("personalized suggestions")

	n := len(results)
	respondSuccess(w, http.StatusOK, results, start, &n)
}

// TrendingSuggestions handles POST /api/v1/suggestions/trending.
// Only PENDING and UNDER_REVIEW suggestions are considered.
func (h *Handler) TrendingSuggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TrendingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	results := h.engine.TrendingSuggestions(r.Context(), models.ToSuggestions(req.Suggestions), req.Limit)

	n := len(results)
	respondSuccess(w, http.StatusOK, results, start, &n)
}

// ContextualSuggestions handles POST /api/v1/suggestions/contextual.
func (h *Handler) ContextualSuggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ContextualRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	results := h.engine.ContextualSuggestions(r.Context(), models.ToSuggestions(req.Suggestions), req.Context)

	n := len(results)
	respondSuccess(w, http.StatusOK, results, start, &n)
}
