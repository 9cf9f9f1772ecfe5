// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope used by every HTTP endpoint.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"id": 3, "title": "Dark mode", "personalized_score": 0.82, ...}],
//	  "metadata": {"timestamp": "2026-05-10T09:00:00Z", "query_time_ms": 2}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "user.id is required",
//	    "details": {"field": "user.id", "tag": "required"}
//	  },
//	  "metadata": {"timestamp": "2026-05-10T09:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Count       *int      `json:"count,omitempty"`
}

// APIError is a structured error.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid request body or parameter
//   - INVALID_JSON: the body could not be decoded
//   - NOT_FOUND: no cached profile for the user
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - RANKING_ERROR: the engine rejected the request
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    float64           `json:"uptime_seconds"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
