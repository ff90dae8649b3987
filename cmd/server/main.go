// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/adinterest/internal/api"
	"github.com/tomtom215/adinterest/internal/config"
	"github.com/tomtom215/adinterest/internal/database"
	"github.com/tomtom215/adinterest/internal/logging"
	"github.com/tomtom215/adinterest/internal/supervisor"
	"github.com/tomtom215/adinterest/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting adinterest with supervisor tree")

	comps, err := initComponents(cfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize components")
	}
	defer func() {
		if err := comps.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	for _, origin := range cfg.Security.CORSOrigins {
		if origin == "*" && cfg.Server.IsProduction() {
			logging.Warn().Msg("CORS allows any origin in production")
		}
	}

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled
	mwCfg.TrainPerMinute = cfg.Ads.TrainRateLimit

	handler := api.NewHandler(comps.service, api.HandlerConfig{
		DefaultAdLimit: cfg.Ads.DefaultLimit,
		Version:        version,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(mwCfg))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 30*time.Second, // training can outlast the request timeout
		IdleTimeout:       120 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewModelService(comps.classifier, comps.service, services.ModelServiceConfig{
		TrainOnStartup:  cfg.Classifier.TrainOnStartup,
		RetrainInterval: cfg.Classifier.RetrainInterval,
	}, logger))
	if badgerStore, ok := comps.store.(*database.BadgerStore); ok {
		tree.AddDataService(services.NewStoreGCService(badgerStore, 10*time.Minute, 0.5, logger))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// ServeBackground sends exactly one value and never closes the channel.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
