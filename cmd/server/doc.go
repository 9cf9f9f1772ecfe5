// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

/*
Command server runs the suggestion ranking HTTP service.

Configuration comes from defaults, an optional .env file, an optional YAML
file (CONFIG_PATH or ./config.yaml) and environment variables, in that order
of precedence. See package config for the keys.

Startup:

 1. Load and validate configuration, initialize logging.
 2. Build the profile store and the ranking engine.
 3. Create the interaction pipeline when events are enabled.
 4. Build the HTTP router.
 5. Run everything under the supervisor tree until SIGINT or SIGTERM.

When a config file is in use, edits to its ranking and engagement settings
are applied without a restart.
*/
package main
