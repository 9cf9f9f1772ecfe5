// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/suggestrank/internal/logging"
)

const consumerHandlerName = "profile-updater"

// Pipeline wires the interaction publisher, the bus and the consuming
// router together. Start and Shutdown may be called repeatedly; each Start
// runs a fresh router on the same bus.
type Pipeline struct {
	cfg       Config
	handler   *InteractionHandler
	publisher *Publisher
	bus       *bus
	server    *EmbeddedServer
	dedup     *Deduplicator
	wmLogger  watermill.LoggerAdapter
	logger    zerolog.Logger

	mu     sync.Mutex
	router *Router
	done   chan error
}

// NewPipeline connects to the configured backend. With the embedded server
// enabled the NATS URL is replaced by the in-process server's.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPipeline(ctx context.Context, cfg Config, updater ProfileUpdater, logger zerolog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if updater == nil {
		return nil, fmt.Errorf("%w: profile updater is required", ErrInvalidConfig)
	}

	p := &Pipeline{
		cfg:      cfg,
		handler:  NewInteractionHandler(updater, logger),
		wmLogger: logging.NewWatermillLogger(logger),
		logger:   logger,
	}
	if cfg.DedupEnabled {
		p.dedup = NewDeduplicator(cfg.DedupCapacity, cfg.DedupTTL)
	}

	switch cfg.Backend {
	case BackendNATS:
		url := cfg.NATSURL
		if cfg.EmbeddedServer {
			srv, err := NewEmbeddedServer(ServerConfig{Host: "127.0.0.1", Port: -1, StoreDir: cfg.StoreDir})
			if err != nil {
				return nil, err
			}
			p.server = srv
			url = srv.ClientURL()
			logger.Info().Str("url", url).Msg("embedded NATS server started")
		}
		b, err := newNATSBus(ctx, &cfg, url, p.wmLogger)
		if err != nil {
			p.shutdownServer()
			return nil, err
		}
		p.bus = b
	default:
		p.bus = newMemoryBus(p.wmLogger)
	}

	breaker := NewCircuitBreaker(cfg.BreakerName, cfg.BreakerMaxFailures, cfg.BreakerTimeout, logger)
	p.publisher = NewPublisher(p.bus.publisher, cfg.Topic, breaker, logger)

	logger.Info().
		Str("backend", cfg.Backend).
		Str("topic", cfg.Topic).
		Bool("dedup", cfg.DedupEnabled).
		Msg("interaction pipeline created")
	return p, nil
}

// Publisher returns the pipeline's interaction publisher.
func (p *Pipeline) Publisher() *Publisher {
	return p.publisher
}

// Start runs the consuming router in the background and waits until it is
// running or ctx expires.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.router != nil {
		return errors.New("pipeline already started")
	}

	router, err := NewRouter(RouterConfigFrom(&p.cfg), p.bus.publisher, p.dedup, p.wmLogger)
	if err != nil {
		return err
	}
	router.AddConsumerHandler(consumerHandlerName, p.cfg.Topic, sharedSubscriber{p.bus.subscriber}, p.handler.Handle)

	done := make(chan error, 1)
	go func() {
		done <- router.Run(context.WithoutCancel(ctx))
	}()

	select {
	case <-router.Running():
	case err := <-done:
		return fmt.Errorf("router exited during startup: %w", err)
	case <-ctx.Done():
		_ = router.Close()
		return ctx.Err()
	}

	p.router = router
	p.done = done
	p.logger.Info().Str("topic", p.cfg.Topic).Msg("interaction consumer started")
	return nil
}

// Shutdown stops the router. The bus stays open for a later Start.
func (p *Pipeline) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	router, done := p.router, p.done
	p.router, p.done = nil, nil
	p.mu.Unlock()

	if router == nil {
		return nil
	}

	closeErr := make(chan error, 1)
	go func() { closeErr <- router.Close() }()

	select {
	case err := <-closeErr:
		if err != nil {
			return fmt.Errorf("close router: %w", err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("router run: %w", err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	p.logger.Info().Msg("interaction consumer stopped")
	return nil
}

// IsRunning reports whether the consumer is running.
func (p *Pipeline) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.router != nil && p.router.IsRunning()
}

// Ready reports whether interactions can currently be published and
// consumed.
func (p *Pipeline) Ready(_ context.Context) error {
	if p.bus.conn != nil && p.bus.conn.Status() != natsgo.CONNECTED {
		return fmt.Errorf("NATS connection %s", p.bus.conn.Status())
	}
	if !p.IsRunning() {
		return errors.New("interaction consumer not running")
	}
	return nil
}

// Close stops the consumer and releases the bus and the embedded server.
func (p *Pipeline) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.CloseTimeout+5*time.Second)
	defer cancel()

	var errs []error
	if err := p.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := p.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := p.bus.Close(); err != nil {
		errs = append(errs, err)
	}
	p.shutdownServer()
	return errors.Join(errs...)
}

func (p *Pipeline) shutdownServer() {
	if p.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.server.Shutdown(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("embedded NATS server shutdown")
	}
}
