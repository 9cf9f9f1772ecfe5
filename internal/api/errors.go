// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package api

import "errors"

// Error codes used in APIError.Code.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidJSON     = "INVALID_JSON"
	CodeInvalidUserID   = "INVALID_USER_ID"
	CodeNotFound        = "NOT_FOUND"
	CodeTooLarge        = "REQUEST_TOO_LARGE"
	CodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	CodeNotReady        = "NOT_READY"
	CodeInternal        = "INTERNAL_ERROR"
	CodeUnsupportedType = "UNSUPPORTED_MEDIA_TYPE"
)

// ErrEmptyBody is returned when a POST endpoint receives no body.
var ErrEmptyBody = errors.New("request body is empty")
