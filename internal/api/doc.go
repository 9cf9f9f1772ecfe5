// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

/*
Package api provides the HTTP surface of the ranking service using the Chi
router.

Routes:

	POST   /api/v1/suggestions/personalized   rank for a user
	POST   /api/v1/suggestions/trending       trending open suggestions
	POST   /api/v1/suggestions/contextual     suggestions for a page context
	GET    /api/v1/profiles/{userID}          cached profile snapshot
	DELETE /api/v1/profiles/{userID}          drop the cached profile
	POST   /api/v1/profiles/{userID}/events   record an interaction
	GET    /api/v1/ranking/config             active ranking configuration
	GET    /api/v1/ranking/stats              engine and profile cache counters
	GET    /api/v1/health/live                liveness probe
	GET    /api/v1/health/ready               readiness probe
	GET    /metrics                           Prometheus exposition

Every JSON endpoint answers with the models.APIResponse envelope. Errors
carry a machine readable code (VALIDATION_ERROR, INVALID_JSON, NOT_FOUND,
REQUEST_TOO_LARGE, RATE_LIMIT_EXCEEDED, INTERNAL_ERROR).

Middleware:

The global stack assigns a request ID, resolves the client IP, logs each
request, recovers panics and applies CORS (go-chi/cors). API routes add
per-IP rate limiting (go-chi/httprate), security headers, a body size limit
and Prometheus instrumentation.

Interaction events:

When an InteractionPublisher is configured, submitted events are published
on the event bus and consumed asynchronously. If publishing fails, or the
publisher's circuit breaker is open, the event is applied inline instead so
no interaction is lost while the bus is degraded.
*/
package api
