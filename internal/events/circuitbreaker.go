// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/suggestrank/internal/metrics"
)

// NewCircuitBreaker creates the publish breaker. It trips after
// maxFailures consecutive failures and probes again after timeout. State
// changes are logged and exported as metrics.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCircuitBreaker(name string, maxFailures uint32, timeout time.Duration, logger zerolog.Logger) *gobreaker.CircuitBreaker[struct{}] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String())
			event := logger.Info()
			if to == gobreaker.StateOpen {
				event = logger.Warn()
			}
			event.Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	}
	metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.BreakerClosed)

	return gobreaker.NewCircuitBreaker[struct{}](settings)
}
