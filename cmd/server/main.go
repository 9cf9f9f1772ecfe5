// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/suggestrank/internal/api"
	"github.com/tomtom215/suggestrank/internal/config"
	"github.com/tomtom215/suggestrank/internal/logging"
	"github.com/tomtom215/suggestrank/internal/supervisor"
	"github.com/tomtom215/suggestrank/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.ToLoggingConfig())
	logging.Info().Str("version", version).Msg("Starting suggestrank")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, config.ConfigFile()); err != nil {
		logging.Err(err).Msg("Server exited with error")
		stop()
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires the components and serves until ctx is canceled.
func run(ctx context.Context, cfg *config.Config, configPath string) error {
	logger := logging.With().Str("version", version).Logger()

	engine, store, err := initRanking(cfg, logging.WithComponent("ranking"))
	if err != nil {
		return err
	}

	pipeline, err := initEvents(ctx, cfg, engine, logging.WithComponent("events"))
	if err != nil {
		return err
	}

	handlerOpts := []api.HandlerOption{
		api.WithVersion(version),
		api.WithProfileStats(store),
	}
	if pipeline != nil {
		defer func() {
			if err := pipeline.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing interaction pipeline")
			}
		}()
		handlerOpts = append(handlerOpts,
			api.WithPublisher(pipeline.Publisher()),
			api.WithReadinessCheck("events", pipeline.Ready),
		)
	}

	handler := api.NewHandler(engine, handlerOpts...)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	tree.AddProfileService(services.NewProfileJanitorService(engine, cfg.Profiles.JanitorInterval, logging.WithComponent("janitor")))

	if spec := cfg.Profiles.EngagementRefreshSchedule; spec != "" {
		svc, err := services.NewEngagementRefreshService(engine, spec, logging.WithComponent("engagement"))
		if err != nil {
			return err
		}
		tree.AddProfileService(svc)
	}

	if configPath != "" {
		tree.AddProfileService(services.NewConfigReloadService(
			configPath, config.WatchConfigFile, reloadRanking(engine, configPath), logging.WithComponent("config")))
	}

	if pipeline != nil {
		tree.AddEventService(services.NewPipelineService(pipeline, cfg.Server.ShutdownTimeout))
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logger.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	errCh := tree.ServeBackground(ctx)
	err = <-errCh

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logger.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}
