// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

/*
Package cache provides a bounded, thread-safe LRU cache with TTL support.

# Overview

LRU combines a hash map with a doubly-linked list so lookups, inserts and
evictions are all O(1). Each entry expires a fixed TTL after its last write;
reads move an entry to the front of the recency list but never extend its
lifetime.

# Use Cases

  - Profile store: one immutable profile per user, evicted by capacity or
    after a period without updates
  - Event deduplication: IsDuplicate remembers processed event IDs for the
    deduplication window

# Usage

	c := cache.NewLRU[int64, *Profile](10000, 24*time.Hour,
	    cache.WithEvictCallback(func(id int64, p *Profile, r cache.EvictReason) {
	        log.Debug().Int64("user_id", id).Str("reason", string(r)).Msg("evicted")
	    }),
	)
	c.Add(42, profile)
	if p, ok := c.Get(42); ok {
	    // use p
	}

Eviction callbacks run after the cache lock is released, so they may call
back into the cache.
*/
package cache
