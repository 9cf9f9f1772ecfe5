// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package services adapts the server's long-running components to
// suture.Service.
//
// Each service returns ctx.Err() after a clean stop and a wrapped error on
// failure so that the supervisor restarts it:
//
//   - HTTPServerService: the API server with graceful shutdown
//   - PipelineService: the interaction event pipeline
//   - ProfileJanitorService: periodic sweep of expired profiles
//   - EngagementRefreshService: cron-scheduled engagement recomputation
//   - ConfigReloadService: applies ranking settings when the config file changes
package services
