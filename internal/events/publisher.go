// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/suggestrank/internal/metrics"
	"github.com/tomtom215/suggestrank/internal/ranking"
)

// Metadata keys set on published messages.
const (
	MetadataEventID = "event_id"
	MetadataUserID  = "user_id"
	MetadataType    = "interaction_type"
)

// Publisher publishes interaction messages with circuit breaker protection.
type Publisher struct {
	publisher  message.Publisher
	topic      string
	breaker    *gobreaker.CircuitBreaker[struct{}]
	serializer *Serializer
	logger     zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps pub. A nil breaker disables circuit breaking.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPublisher(pub message.Publisher, topic string, breaker *gobreaker.CircuitBreaker[struct{}], logger zerolog.Logger) *Publisher {
	return &Publisher{
		publisher:  pub,
		topic:      topic,
		breaker:    breaker,
		serializer: NewSerializer(),
		logger:     logger,
	}
}

// PublishInteraction publishes event for userID. The event ID becomes the
// Watermill message UUID and the JetStream Nats-Msg-Id, so redelivered or
// re-submitted events deduplicate on both sides of the bus.
func (p *Publisher) PublishInteraction(ctx context.Context, eventID string, userID int64, event *ranking.InteractionEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	im := NewInteractionMessage(eventID, userID, event)
	data, err := p.serializer.Marshal(im)
	if err != nil {
		metrics.RecordInteractionPublished("invalid")
		return err
	}

	msg := message.NewMessage(im.EventID, data)
	msg.Metadata.Set(MetadataEventID, im.EventID)
	msg.Metadata.Set(MetadataUserID, strconv.FormatInt(userID, 10))
	msg.Metadata.Set(MetadataType, string(im.Type))
	msg.Metadata.Set(natsgo.MsgIdHdr, im.EventID)
	msg.SetContext(ctx)

	err = p.publish(msg)
	switch {
	case err == nil:
		metrics.RecordInteractionPublished("ok")
		return nil
	case errors.Is(err, ErrCircuitOpen):
		metrics.RecordInteractionPublished("circuit_open")
	default:
		metrics.RecordInteractionPublished("error")
	}
	return err
}

func (p *Publisher) publish(msg *message.Message) error {
	if p.breaker == nil {
		return p.publisher.Publish(p.topic, msg)
	}

	name := p.breaker.Name()
	_, err := p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.publisher.Publish(p.topic, msg)
	})
	switch {
	case err == nil:
		metrics.RecordBreakerRequest(name, "success")
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordBreakerRequest(name, "rejected")
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	default:
		metrics.RecordBreakerRequest(name, "failure")
		p.logger.Debug().Err(err).Str("topic", p.topic).Msg("publish failed")
		return fmt.Errorf("publish interaction: %w", err)
	}
}

// BreakerState returns the breaker state name, or "disabled".
func (p *Publisher) BreakerState() string {
	if p.breaker == nil {
		return "disabled"
	}
	return p.breaker.State().String()
}

// Close marks the publisher closed. The underlying Watermill publisher is
// owned by the bus and closed there.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
