// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/suggestrank/internal/cache"
)

// RouterConfig holds configuration for the Watermill router.
type RouterConfig struct {
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	// Messages per second, 0 disables throttling.
	ThrottlePerSecond int64

	PoisonQueueTopic string

	DeduplicationEnabled  bool
	DeduplicationTTL      time.Duration
	DeduplicationCapacity int
}

// RouterConfigFrom extracts the router settings from cfg.
func RouterConfigFrom(cfg *Config) RouterConfig {
	return RouterConfig{
		CloseTimeout:          cfg.CloseTimeout,
		RetryMaxRetries:       cfg.RetryMaxRetries,
		RetryInitialInterval:  cfg.RetryInitialInterval,
		RetryMaxInterval:      cfg.RetryMaxInterval,
		RetryMultiplier:       cfg.RetryMultiplier,
		ThrottlePerSecond:     cfg.ThrottlePerSecond,
		PoisonQueueTopic:      cfg.PoisonTopic,
		DeduplicationEnabled:  cfg.DedupEnabled,
		DeduplicationTTL:      cfg.DedupTTL,
		DeduplicationCapacity: cfg.DedupCapacity,
	}
}

// Deduplicator implements middleware.ExpiringKeyRepository on a bounded LRU.
type Deduplicator struct {
	seen *cache.LRU[string, struct{}]
}

// NewDeduplicator remembers up to capacity keys for ttl.
func NewDeduplicator(capacity int, ttl time.Duration) *Deduplicator {
	return &Deduplicator{seen: cache.NewLRU[string, struct{}](capacity, ttl)}
}

// IsDuplicate reports whether key was seen within the TTL and records it.
func (d *Deduplicator) IsDuplicate(_ context.Context, key string) (bool, error) {
	return d.seen.IsDuplicate(key), nil
}

// Len returns the number of remembered keys.
func (d *Deduplicator) Len() int {
	return d.seen.Len()
}

// Router wraps the Watermill router with the pipeline middleware.
type Router struct {
	router  *message.Router
	dedup   *Deduplicator
	running atomic.Bool
}

// NewRouter creates a router. dedup may be shared across routers so that
// a restarted router keeps its memory of seen events; it is only used when
// deduplication is enabled.
func NewRouter(cfg RouterConfig, poisonPublisher message.Publisher, dedup *Deduplicator, logger watermill.LoggerAdapter) (*Router, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	r := &Router{router: wmRouter}

	if cfg.ThrottlePerSecond > 0 {
		throttle := middleware.NewThrottle(cfg.ThrottlePerSecond, time.Second)
		wmRouter.AddMiddleware(throttle.Middleware)
	}

	if cfg.DeduplicationEnabled {
		if dedup == nil {
			dedup = NewDeduplicator(cfg.DeduplicationCapacity, cfg.DeduplicationTTL)
		}
		r.dedup = dedup
		d := middleware.Deduplicator{
			KeyFactory: messageKey,
			Repository: dedup,
		}
		wmRouter.AddMiddleware(d.Middleware)
	}

	if poisonPublisher != nil && cfg.PoisonQueueTopic != "" {
		poisonQueue, err := middleware.PoisonQueue(poisonPublisher, cfg.PoisonQueueTopic)
		if err != nil {
			return nil, fmt.Errorf("create poison queue middleware: %w", err)
		}
		wmRouter.AddMiddleware(poisonQueue)
	}

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          logger,
	}
	wmRouter.AddMiddleware(retry.Middleware)

	wmRouter.AddMiddleware(middleware.Recoverer)

	return r, nil
}

// messageKey prefers the event ID metadata over the message UUID.
func messageKey(msg *message.Message) (string, error) {
	if id := msg.Metadata.Get(MetadataEventID); id != "" {
		return id, nil
	}
	return msg.UUID, nil
}

// AddConsumerHandler registers a handler without output messages.
func (r *Router) AddConsumerHandler(name, topic string, subscriber message.Subscriber, handler message.NoPublishHandlerFunc) {
	r.router.AddConsumerHandler(name, topic, subscriber, handler)
}

// Run starts the router and blocks until ctx is canceled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	r.running.Store(true)
	defer r.running.Store(false)
	return r.router.Run(ctx)
}

// Running returns a channel closed once the router is running.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// IsRunning reports whether Run is active.
func (r *Router) IsRunning() bool {
	return r.running.Load()
}

// Close stops the router, waiting for in-flight messages up to CloseTimeout.
func (r *Router) Close() error {
	return r.router.Close()
}
