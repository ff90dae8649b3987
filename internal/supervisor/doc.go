// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

/*
Package supervisor runs the long-lived parts of the ad service under a
suture v4 supervisor tree.

# Overview

	RootSupervisor ("adinterest")
	├── DataSupervisor ("data-layer")
	│   ├── ModelService (load or train on startup, periodic retrain)
	│   └── StoreGCService (BadgerDB backend only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Services that return an error are restarted with suture's backoff. A
service in one layer crashing does not restart the other layer.

# Usage

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewModelService(clf, svc, modelCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)

# Logging

Supervisor events (service panics, restarts, backoff) are logged through
sutureslog. The slog logger is backed by zerolog, see logging.NewSlogLogger.

# See Also

  - internal/supervisor/services: suture.Service wrappers
  - github.com/thejerf/suture/v4
*/
package supervisor
