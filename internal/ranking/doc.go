// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package ranking implements a personalized suggestion ranking engine.
//
// # Architecture
//
// The engine ranks user-submitted suggestions (feature requests, ideas) three
// ways:
//
//   - Personalized: a per-user profile (preferred categories, keywords,
//     engagement level) drives a weighted, capped relevance score; a
//     diversity reranker limits category repetition in the final list
//   - Trending: open suggestions ordered by vote and comment velocity per
//     day of age
//   - Contextual: suggestions ordered by how many keywords of a page
//     context's dictionary they mention
//
// Profiles are derived lazily on a user's first ranking request and then
// refined incrementally by interaction events. They are cached in a bounded
// store with a TTL since last write.
//
// # Packages
//
//   - keywords: token extraction and multi-keyword substring matching
//   - profile: profile builder and the concurrency-safe profile store
//   - scoring: the relevance function
//   - reranking: category diversity
//   - trending, contextual: the non-personalized rankers
//   - standard: assembles the default components from a Config
//
// # Usage
//
//	engine, err := standard.NewEngine(ranking.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	ranked := engine.GeneratePersonalizedSuggestions(ctx, &user, suggestions, &history)
//
// # Thread Safety
//
// All operations are safe for concurrent use. Builds and updates of the same
// user's profile are serialized; published profiles are immutable, so
// readers never observe partial updates.
//
// # Determinism
//
// Given the same profile, suggestions and clock, results are identical.
// Sorting is stable, so equal scores keep their input order.
package ranking
