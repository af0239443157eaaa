package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/catastro-latam/catastro-api/internal/catastro"
	"github.com/catastro-latam/catastro-api/internal/dataset"
	"github.com/catastro-latam/catastro-api/internal/poi"
	"github.com/catastro-latam/catastro-api/pkg/geocode"
)

// appEnv holds the wired service graph for a single command invocation.
type appEnv struct {
	resolver *geocode.Resolver
	svc      *catastro.Service
	cache    *geocode.Cache
}

func (e *appEnv) Close() {
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			zap.L().Warn("closing geocode cache", zap.Error(err))
		}
	}
}

// newResolver builds the geocoding resolver from config, attaching the
// persistent cache when one is configured.
func newResolver() (*geocode.Resolver, *geocode.Cache, error) {
	opts := []geocode.Option{
		geocode.WithGoogleAPIKey(cfg.Geocode.GoogleAPIKey),
		geocode.WithUserAgent(cfg.Geocode.UserAgent),
		geocode.WithBatchConcurrency(cfg.Geocode.BatchConcurrency),
	}

	var cache *geocode.Cache
	if cfg.Geocode.CachePath != "" {
		c, err := geocode.NewCache(cfg.Geocode.CachePath, cfg.Geocode.CacheTTLDays)
		if err != nil {
			return nil, nil, eris.Wrap(err, "cmd: open geocode cache")
		}
		cache = c
		opts = append(opts, geocode.WithCache(c))
	}

	return geocode.NewResolver(opts...), cache, nil
}

// initEnv loads the cadastral dataset and wires the full service graph.
// Commands that only geocode use newResolver directly and skip the dataset.
func initEnv(ctx context.Context) (*appEnv, error) {
	resolver, cache, err := newResolver()
	if err != nil {
		return nil, err
	}

	parcels, err := dataset.Load(ctx, cfg.Dataset.Path)
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		return nil, eris.Wrap(err, "cmd: load dataset")
	}
	zap.L().Info("dataset loaded",
		zap.String("path", cfg.Dataset.Path),
		zap.Int("parcels", len(parcels)),
	)

	return &appEnv{
		resolver: resolver,
		svc:      catastro.NewService(parcels, resolver, poi.NewStaticFinder()),
		cache:    cache,
	}, nil
}
