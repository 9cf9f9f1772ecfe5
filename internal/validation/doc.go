// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the HTTP handlers and the
// interaction event consumer. Besides the built-in tags it registers the
// ranking enumerations:
//
//   - suggestion_status: PENDING, UNDER_REVIEW, APPROVED, REJECTED,
//     IMPLEMENTED or DUPLICATE
//   - vote_type: UPVOTE or DOWNVOTE
//   - interaction_type: vote, comment or view
//
// Roles are free-form; unknown roles seed the default categories.
//
// Field names in error messages come from the json tag, so a failing
// request reports "user_id" rather than "UserID".
//
//	type interactionRequest struct {
//	    Type     ranking.InteractionType `json:"type" validate:"required,interaction_type"`
//	    VoteType ranking.VoteType        `json:"vote_type" validate:"omitempty,vote_type"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
