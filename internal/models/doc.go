// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

/*
Package models defines the HTTP request and response structures of the
ranking service.

Key Components:

  - APIResponse: standard response envelope with Metadata and APIError
  - PersonalizedRequest, TrendingRequest, ContextualRequest: ranking inputs
  - InteractionRequest: a single profile update
  - InteractionResult, HealthResponse, RankingStats: response payloads

Domain types (suggestions, profiles, scored results) live in
internal/ranking; the structures here embed them so the wire format is
shared with the event bus and the rankctl CLI.

Validation:

Request structures carry go-playground/validator tags, including the custom
suggestion_status, vote_type and interaction_type tags registered by
internal/validation. User roles are free-form and only length-bounded.
*/
package models
