// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

//go:build integration

package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/testinfra"
)

func natsPipelineConfig(url string) Config {
	cfg := testPipelineConfig()
	cfg.Backend = BackendNATS
	cfg.NATSURL = url
	cfg.AckWaitTimeout = 5 * time.Second
	return cfg
}

func TestPipeline_NATSContainer(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testinfra.NewNATSContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { testinfra.CleanupContainer(t, context.Background(), container.Container) })

	updater := &recordingUpdater{}
	p, err := NewPipeline(ctx, natsPipelineConfig(container.URL), updater, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	require.NoError(t, p.Start(ctx))
	require.NoError(t, p.Ready(ctx))

	id := uuid.NewString()
	require.NoError(t, p.Publisher().PublishInteraction(ctx, id, 11, voteEvent(1, ranking.VoteUp)))
	// Same Nats-Msg-Id: JetStream drops it inside the duplicate window.
	require.NoError(t, p.Publisher().PublishInteraction(ctx, id, 11, voteEvent(1, ranking.VoteUp)))
	require.NoError(t, p.Publisher().PublishInteraction(ctx, "", 11, commentEvent(2, "ship it")))

	require.Eventually(t, func() bool { return updater.count() == 2 }, 30*time.Second, 50*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 2, updater.count())
}

func TestPipeline_EmbeddedServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := natsPipelineConfig("")
	cfg.EmbeddedServer = true
	cfg.StoreDir = t.TempDir()

	updater := &recordingUpdater{}
	p, err := NewPipeline(ctx, cfg, updater, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	require.NoError(t, p.Start(ctx))

	require.NoError(t, p.Publisher().PublishInteraction(ctx, "", 4, commentEvent(9, "embedded")))
	require.Eventually(t, func() bool { return updater.count() == 1 }, 30*time.Second, 50*time.Millisecond)
}
