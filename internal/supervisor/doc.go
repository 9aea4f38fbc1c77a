// Platewise - Restaurant Recommendations from Review Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

/*
Package supervisor runs the long-lived parts of the serve command under a
suture v4 supervisor tree.

	RootSupervisor ("platewise")
	├── DataSupervisor ("data-layer")
	│   ├── DatasetService (initial load, optional periodic reload)
	│   └── CacheGCService (if the badger ranking cache is enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A dataset service that fails its initial load returns an error and is
restarted with backoff by the data layer. The API layer keeps running and
the readiness probe reports 503 until a load succeeds.

Supervisor events are logged through sutureslog using the zerolog-backed
slog handler from the logging package:

	tree, err := supervisor.NewSupervisorTree(
	    logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewDatasetService(eng, cfg.Data.ReloadInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	return tree.Serve(ctx)

MockService scripts failures for tests of the tree.
*/
package supervisor
