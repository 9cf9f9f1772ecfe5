// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Ranking Metrics
	RankingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_requests_total",
			Help: "Total number of ranking operations",
		},
		[]string{"operation"}, // personalized, trending, contextual
	)

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranking_duration_seconds",
			Help:    "Ranking operation latency in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		},
		[]string{"operation"},
	)

	RankingReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranking_returned_items",
			Help:    "Number of items returned per ranking operation",
			Buckets: []float64{0, 1, 2, 3, 5, 7, 10, 20},
		},
		[]string{"operation"},
	)

	RankingEmptyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_empty_results_total",
			Help: "Ranking operations that returned no items",
		},
		[]string{"operation"},
	)

	// Profile Metrics
	ProfileLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_lookups_total",
			Help: "Profile cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	ProfileBuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_builds_total",
			Help: "Total number of profiles derived from history",
		},
	)

	ProfileBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_build_duration_seconds",
			Help:    "Time to derive a profile from history",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	ProfileUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_updates_total",
			Help: "Interaction updates by result",
		},
		[]string{"type", "result"}, // result: applied, unknown_profile
	)

	ProfileEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_evictions_total",
			Help: "Profiles removed from the cache by reason",
		},
		[]string{"reason"}, // capacity, expired, removed
	)

	ProfilesCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "profiles_cached",
			Help: "Current number of cached profiles",
		},
	)

	EngagementRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_engagement_refreshes_total",
			Help: "Scheduled engagement refresh runs",
		},
	)

	EngagementChanged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_engagement_changed_total",
			Help: "Profiles whose engagement level changed during a refresh",
		},
	)

	// Interaction Event Metrics
	InteractionEventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_events_consumed_total",
			Help: "Interaction events handled by the pipeline",
		},
		[]string{"type", "result"}, // result: applied, unknown_profile, invalid, duplicate
	)

	InteractionEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_events_published_total",
			Help: "Interaction events published to the bus",
		},
		[]string{"result"}, // success, failure, rejected
	)

	InteractionPublishFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_publish_fallbacks_total",
			Help: "Interactions applied directly because publishing was unavailable",
		},
		[]string{"reason"}, // breaker_open, publish_error, disabled
	)

	InteractionProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "interaction_processing_duration_seconds",
			Help:    "Time to handle one interaction message",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rate limited request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRanking records one ranking operation.
func RecordRanking(operation string, duration time.Duration, returned int) {
	RankingRequests.WithLabelValues(operation).Inc()
	RankingDuration.WithLabelValues(operation).Observe(duration.Seconds())
	RankingReturned.WithLabelValues(operation).Observe(float64(returned))
	if returned == 0 {
		RankingEmptyResults.WithLabelValues(operation).Inc()
	}
}

// RecordEngagementRefresh records a refresh run and how many profiles changed.
func RecordEngagementRefresh(changed int) {
	EngagementRefreshes.Inc()
	EngagementChanged.Add(float64(changed))
}

// SetProfilesCached sets the cached profile gauge.
func SetProfilesCached(n int) {
	ProfilesCached.Set(float64(n))
}

// RecordInteractionConsumed records the outcome of a pipeline message.
func RecordInteractionConsumed(eventType, result string, duration time.Duration) {
	InteractionEventsConsumed.WithLabelValues(eventType, result).Inc()
	InteractionProcessingDuration.Observe(duration.Seconds())
}

// RecordInteractionPublished records a publish attempt.
func RecordInteractionPublished(result string) {
	InteractionEventsPublished.WithLabelValues(result).Inc()
}

// RecordPublishFallback records an interaction applied without the bus.
func RecordPublishFallback(reason string) {
	InteractionPublishFallbacks.WithLabelValues(reason).Inc()
}

// Circuit breaker state values for CircuitBreakerState.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

// RecordBreakerTransition records a breaker state change. States are the
// lowercase names used by gobreaker ("closed", "half-open", "open").
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	switch to {
	case "open":
		CircuitBreakerState.WithLabelValues(name).Set(BreakerOpen)
	case "half-open":
		CircuitBreakerState.WithLabelValues(name).Set(BreakerHalfOpen)
	default:
		CircuitBreakerState.WithLabelValues(name).Set(BreakerClosed)
	}
}

// RecordBreakerRequest records a request through a breaker.
func RecordBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}
