// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are package-level promauto globals registered with the default
// registry. Callers record through the Record* helpers or through the
// observer adapters, which plug into the ranking engine and the profile
// store without those packages importing Prometheus:
//
//	engine, _ := standard.NewEngine(cfg, logger,
//	    standard.WithObserver(metrics.RankingObserver{}),
//	    standard.WithStoreObserver(metrics.ProfileObserver{}))
//
// # Metric Families
//
//   - api_*: request count, latency, in-flight requests, rate limit rejections
//   - ranking_*: operations, latency and result sizes per ranking operation
//   - profile_*: cache lookups, builds, updates, evictions, cached count
//   - interaction_events_*: pipeline consumption, publishing and fallbacks
//   - circuit_breaker_*: state and transitions of the publish breaker
package metrics
