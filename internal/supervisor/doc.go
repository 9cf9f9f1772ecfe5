// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

/*
Package supervisor runs the server's long-running services under a suture v4
supervisor tree.

	suggestrank
	├── profiles-layer
	│   ├── ProfileJanitorService
	│   ├── EngagementRefreshService (if a schedule is configured)
	│   └── ConfigReloadService (if a config file is in use)
	├── events-layer
	│   └── PipelineService (if events are enabled)
	└── api-layer
	    └── HTTPServerService

Crashed services are restarted with backoff. Repeated failures put only the
affected layer into backoff; the API keeps serving while the event pipeline
reconnects.

Supervisor events are logged through sutureslog into the zerolog logger:

	tree := supervisor.NewTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))
	err := tree.Serve(ctx)
*/
package supervisor
