// Adinterest - Interest-Based Ad Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/adinterest

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/adinterest/internal/cache"
	"github.com/tomtom215/adinterest/internal/config"
	"github.com/tomtom215/adinterest/internal/database"
	"github.com/tomtom215/adinterest/internal/logging"
	"github.com/tomtom215/adinterest/internal/recommend"
	"github.com/tomtom215/adinterest/internal/recommend/ads"
	"github.com/tomtom215/adinterest/internal/recommend/classifier"
	"github.com/tomtom215/adinterest/internal/recommend/storage"
)

// components holds everything the server wires together.
type components struct {
	store      database.Store
	cache      cache.PredictionCache
	classifier *classifier.Classifier
	service    *recommend.Service
}

// Close releases the store and, for Redis, the cache connection.
func (c *components) Close() error {
	if closer, ok := c.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing prediction cache")
		}
	}
	return c.store.Close()
}

// initComponents builds the store, cache, classifier, ad selector and
// recommendation service from cfg. On error everything opened so far is closed.
//
//nolint:gocritic // logger passed by value per zerolog convention
func initComponents(cfg *config.Config, logger zerolog.Logger) (*components, error) {
	store, err := database.Open(database.Config{
		Backend:    cfg.Database.Backend,
		Path:       cfg.Database.Path,
		SyncWrites: cfg.Database.SyncWrites,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Info().Str("backend", cfg.Database.Backend).Str("path", cfg.Database.Path).Msg("Store opened")

	c := &components{store: store}
	fail := func(err error) (*components, error) {
		if closeErr := c.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing components after init failure")
		}
		return nil, err
	}

	c.cache, err = cache.NewPredictionCache(cache.Config{
		Backend:  cfg.Cache.Backend,
		Capacity: cfg.Cache.Capacity,
		TTL:      cfg.Cache.TTL,
		Redis: cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Timeout:  cfg.Cache.Redis.Timeout,
		},
	}, logger)
	if err != nil {
		c.cache = cache.NopPredictionCache{}
		return fail(fmt.Errorf("create prediction cache: %w", err))
	}

	artifacts, err := storage.NewFileStore(cfg.Classifier.ModelPath)
	if err != nil {
		return fail(fmt.Errorf("model artifact store: %w", err))
	}

	c.classifier, err = classifier.New(classifier.Config{
		NumTrees:         cfg.Classifier.NumTrees,
		MaxDepth:         cfg.Classifier.MaxDepth,
		MinSamplesSplit:  cfg.Classifier.MinSamplesSplit,
		MinSamplesLeaf:   cfg.Classifier.MinSamplesLeaf,
		Seed:             cfg.Classifier.Seed,
		SyntheticSamples: cfg.Classifier.SyntheticSamples,
		TestFraction:     cfg.Classifier.TestFraction,
		Version:          cfg.Classifier.ModelVersion,
	}, artifacts, logger)
	if err != nil {
		return fail(fmt.Errorf("create classifier: %w", err))
	}

	catalog := ads.DefaultCatalog()
	if cfg.Ads.CatalogPath != "" {
		catalog, err = ads.LoadCatalog(cfg.Ads.CatalogPath)
		if err != nil {
			return fail(fmt.Errorf("load ad catalog: %w", err))
		}
	}
	logger.Info().Int("ads", catalog.Len()).Strs("categories", catalog.Categories()).Msg("Ad catalog loaded")

	seed := cfg.Ads.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	selector := ads.NewSelector(catalog, seed, logger)

	c.service, err = recommend.NewService(recommend.Config{
		ModelVersion:          cfg.Classifier.ModelVersion,
		PredictHistoryLimit:   cfg.Classifier.PredictHistoryLimit,
		AnalyticsHistoryLimit: cfg.Classifier.AnalyticsHistoryLimit,
		DefaultAdLimit:        cfg.Ads.DefaultLimit,
		MaxAdLimit:            cfg.Ads.MaxLimit,
	}, store, c.classifier, selector, c.cache, logger)
	if err != nil {
		return fail(fmt.Errorf("create recommendation service: %w", err))
	}

	return c, nil
}
