// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/suggestrank/internal/ranking"
)

type failingPublisher struct {
	calls atomic.Int32
}

func (p *failingPublisher) Publish(string, ...*message.Message) error {
	p.calls.Add(1)
	return errors.New("broker unavailable")
}

func (p *failingPublisher) Close() error { return nil }

func TestPublisher_SetsMetadata(t *testing.T) {
	t.Parallel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	messages, err := pubSub.Subscribe(ctx, "interactions")
	require.NoError(t, err)

	p := NewPublisher(pubSub, "interactions", nil, zerolog.Nop())
	id := uuid.NewString()
	require.NoError(t, p.PublishInteraction(ctx, id, 9, voteEvent(3, ranking.VoteDown)))

	select {
	case msg := <-messages:
		assert.Equal(t, id, msg.UUID)
		assert.Equal(t, id, msg.Metadata.Get(MetadataEventID))
		assert.Equal(t, id, msg.Metadata.Get(natsgo.MsgIdHdr))
		assert.Equal(t, "9", msg.Metadata.Get(MetadataUserID))
		assert.Equal(t, "vote", msg.Metadata.Get(MetadataType))
		msg.Ack()

		decoded, err := NewSerializer().Unmarshal(msg.Payload)
		require.NoError(t, err)
		assert.Equal(t, ranking.VoteDown, decoded.VoteType)
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}
	assert.Equal(t, "disabled", p.BreakerState())
}

func TestPublisher_InvalidEventNotPublished(t *testing.T) {
	t.Parallel()

	fp := &failingPublisher{}
	p := NewPublisher(fp, "interactions", nil, zerolog.Nop())

	err := p.PublishInteraction(context.Background(), "", 1, voteEvent(1, ""))
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.Zero(t, fp.calls.Load())
}

func TestPublisher_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	fp := &failingPublisher{}
	breaker := NewCircuitBreaker("test-publisher-open", 3, time.Hour, zerolog.Nop())
	p := NewPublisher(fp, "interactions", breaker, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := p.PublishInteraction(ctx, "", 1, commentEvent(1, "hi"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}
	assert.Equal(t, "open", p.BreakerState())

	err := p.PublishInteraction(ctx, "", 1, commentEvent(1, "hi"))
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(3), fp.calls.Load(), "open breaker must not reach the broker")
}

func TestPublisher_Closed(t *testing.T) {
	t.Parallel()

	p := NewPublisher(&failingPublisher{}, "interactions", nil, zerolog.Nop())
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.PublishInteraction(context.Background(), "", 1, commentEvent(1, "x")), ErrPublisherClosed)
}

func TestDeduplicator(t *testing.T) {
	t.Parallel()

	d := NewDeduplicator(2, time.Hour)
	ctx := context.Background()

	dup, err := d.IsDuplicate(ctx, "a")
	require.NoError(t, err)
	assert.False(t, dup)

	dup, _ = d.IsDuplicate(ctx, "a")
	assert.True(t, dup)

	_, _ = d.IsDuplicate(ctx, "b")
	_, _ = d.IsDuplicate(ctx, "c")
	assert.Equal(t, 2, d.Len())

	dup, _ = d.IsDuplicate(ctx, "a")
	assert.False(t, dup, "evicted key is forgotten")
}

func TestMessageKey(t *testing.T) {
	t.Parallel()

	msg := message.NewMessage("uuid-1", nil)
	key, err := messageKey(msg)
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", key)

	msg.Metadata.Set(MetadataEventID, "event-1")
	key, _ = messageKey(msg)
	assert.Equal(t, "event-1", key)
}
