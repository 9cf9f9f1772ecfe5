// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package logging provides the process-wide zerolog logger for Suggestrank.
//
// JSON output is the default; console output is meant for local
// development. Request-scoped fields (request_id, user_id) travel in the
// context and are added by Ctx.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("suggestions", n).Msg("ranking request")
//	logging.Ctx(ctx).Warn().Err(err).Msg("interaction rejected")
//
// # Adapters
//
// Two libraries in the stack log through their own interfaces:
//
//   - suture (via sutureslog) takes a *slog.Logger: use NewSlogLogger
//   - watermill takes a watermill.LoggerAdapter: use NewWatermillLogger
//
// Both write to zerolog so every line shares the same format and level.
//
// # Configuration
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  include caller file:line (default: false)
//
// Always terminate chains with Msg or Send; an unterminated event is never
// written.
package logging
