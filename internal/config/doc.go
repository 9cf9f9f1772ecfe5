// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

// Package config loads Suggestrank configuration with Koanf v2.
//
// # Loading Order
//
// Later layers override earlier ones:
//
//  1. Defaults: built-in values from defaultConfig()
//  2. .env file: optional, loaded into the process environment by godotenv
//  3. YAML file: CONFIG_PATH, or the first of DefaultConfigPaths that exists
//  4. Environment variables: an explicit allow-list (see envMappings)
//
// Unknown environment variables are ignored so that unrelated variables in a
// container never leak into the config tree.
//
// # Sections
//
//   - server: listen address and HTTP timeouts
//   - logging: level, format, caller
//   - ranking: scoring weights, diversity, trending and context tunables
//   - profiles: engagement thresholds, history cap, cache size and TTL,
//     janitor interval and the optional engagement refresh schedule
//   - events: interaction pipeline backend (memory or nats) and router
//     middleware settings
//   - security: CORS, rate limiting and request size limits
//
// # Example YAML
//
//	server:
//	  port: 8080
//	ranking:
//	  category_bonus: 0.5
//	  context_dictionaries:
//	    roadmap: [roadmap, milestone, release]
//	profiles:
//	  ttl: 12h
//	  engagement_refresh_schedule: "@every 6h"
//	events:
//	  enabled: true
//	  backend: nats
//
// # Hot Reload
//
// WatchConfigFile invokes a callback when the YAML file changes. The server
// reloads and swaps the ranking tunables; other sections need a restart.
package config
