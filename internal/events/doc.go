// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

/*
Package events carries user interactions to the ranking engine through a
Watermill message bus.

An interaction submitted over HTTP is published as an InteractionMessage on
the interactions topic. A Watermill router consumes the topic and applies
each message to the user's cached profile with Engine.UpdateProfile.

Backends:

  - memory: watermill gochannel, in-process only
  - nats: NATS JetStream via watermill-nats, optionally against an embedded
    nats-server started by the pipeline

Router middleware, outermost first:

  - Throttle (optional): messages per second
  - Deduplicator (optional): drops event IDs seen within the TTL, backed by
    the bounded LRU from internal/cache
  - PoisonQueue: messages that still fail after retries go to the poison topic
  - Retry: exponential backoff
  - Recoverer: handler panics become errors

Interactions for users without a cached profile are acknowledged and
counted; profiles are only built by ranking requests.

Publishing is guarded by a gobreaker circuit breaker. While the breaker is
open PublishInteraction fails fast with ErrCircuitOpen and the HTTP layer
applies the event inline.
*/
package events
