// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package testinfra starts throwaway brokers for integration tests using
// testcontainers-go. Every file carries the integration build tag.
//
// # NATS Container
//
// NATSContainer runs a NATS server with JetStream enabled, used to exercise
// the interaction event pipeline against a real broker:
//
//	func TestInteractionPipeline(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    nc, err := testinfra.NewNATSContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, nc)
//
//	    cfg := events.DefaultConfig()
//	    cfg.Backend = events.BackendNATS
//	    cfg.NATSURL = nc.URL
//	    // ...
//	}
//
// Tests skip when Docker is unavailable.
package testinfra
