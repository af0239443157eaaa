// Package geocode resolves free-text postal addresses to coordinates using
// the Google Geocoding API (primary, keyed) with Nominatim/OpenStreetMap as a
// rate-limited fallback. Both providers produce the same canonical
// Google-shaped response, so downstream consumers never care which one
// answered.
package geocode

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Response statuses shared by all providers.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// Response is the canonical geocode response shape.
type Response struct {
	Status  string   `json:"status"`
	Results []Result `json:"results"`
}

// Result is a single canonical geocode match.
type Result struct {
	FormattedAddress  string             `json:"formatted_address"`
	Geometry          Geometry           `json:"geometry"`
	PlaceID           string             `json:"place_id"`
	Types             []string           `json:"types"`
	AddressComponents []AddressComponent `json:"address_components"`
}

// Geometry holds the match location and its viewport.
type Geometry struct {
	Location     LatLng   `json:"location"`
	LocationType string   `json:"location_type"`
	Viewport     Viewport `json:"viewport"`
}

// Viewport is a bounding box around a location.
type Viewport struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressComponent is one typed piece of a matched address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Provider is a single geocoding backend producing canonical responses.
type Provider interface {
	Name() string
	Available() bool
	Geocode(ctx context.Context, address, country string) (*Response, error)
}

// Resolver tries the primary provider first and falls back to the secondary
// on transport failure or a non-OK status. The fallback decision is an
// explicit branch on the returned error/status, logged at debug, never a
// recovered panic.
type Resolver struct {
	primary          Provider
	fallback         Provider
	cache            *Cache
	batchConcurrency int
}

// Option configures the Resolver.
type Option func(*resolverConfig)

type resolverConfig struct {
	googleKey        string
	httpClient       *http.Client
	userAgent        string
	primary          Provider
	fallback         Provider
	cache            *Cache
	batchConcurrency int
}

// WithGoogleAPIKey enables the Google Geocoding API as primary provider.
func WithGoogleAPIKey(key string) Option {
	return func(c *resolverConfig) { c.googleKey = key }
}

// WithHTTPClient sets a custom HTTP client for all provider requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *resolverConfig) { c.httpClient = hc }
}

// WithUserAgent sets the client identifier sent to Nominatim, which requires
// a descriptive User-Agent per its usage policy.
func WithUserAgent(ua string) Option {
	return func(c *resolverConfig) { c.userAgent = ua }
}

// WithProviders overrides both providers. Intended for tests and alternative
// backends; either may be nil to keep the default.
func WithProviders(primary, fallback Provider) Option {
	return func(c *resolverConfig) {
		c.primary = primary
		c.fallback = fallback
	}
}

// WithCache attaches a resolver cache.
func WithCache(cache *Cache) Option {
	return func(c *resolverConfig) { c.cache = cache }
}

// WithBatchConcurrency sets the max parallel lookups for BatchResolve.
func WithBatchConcurrency(n int) Option {
	return func(c *resolverConfig) {
		if n > 0 {
			c.batchConcurrency = n
		}
	}
}

// NewResolver creates a Resolver with the given options. Without a Google API
// key every request goes straight to Nominatim.
func NewResolver(opts ...Option) *Resolver {
	cfg := resolverConfig{
		httpClient:       &http.Client{Timeout: 15 * time.Second},
		userAgent:        "catastro-api/1.0",
		batchConcurrency: 4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.primary == nil {
		cfg.primary = NewGoogleProvider(cfg.googleKey, cfg.httpClient)
	}
	if cfg.fallback == nil {
		cfg.fallback = NewNominatimProvider(cfg.httpClient, cfg.userAgent)
	}

	return &Resolver{
		primary:          cfg.primary,
		fallback:         cfg.fallback,
		cache:            cfg.cache,
		batchConcurrency: cfg.batchConcurrency,
	}
}

// Resolve geocodes an address, optionally restricted to an ISO country code.
// A primary failure (transport, parse, or non-OK status) is logged and falls
// through to the fallback; the caller only sees the fallback outcome.
func (r *Resolver) Resolve(ctx context.Context, address, country string) (*Response, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, address, country); err == nil && cached != nil {
			return cached, nil
		}
	}

	if r.primary.Available() {
		resp, err := r.primary.Geocode(ctx, address, country)
		switch {
		case err != nil:
			zap.L().Debug("primary geocoder failed, falling back",
				zap.String("provider", r.primary.Name()),
				zap.Error(err),
			)
		case resp.Status != StatusOK:
			zap.L().Debug("primary geocoder returned non-OK status, falling back",
				zap.String("provider", r.primary.Name()),
				zap.String("status", resp.Status),
			)
		default:
			r.store(ctx, address, country, resp)
			return resp, nil
		}
	}

	resp, err := r.fallback.Geocode(ctx, address, country)
	if err != nil {
		return nil, err
	}
	r.store(ctx, address, country, resp)
	return resp, nil
}

func (r *Resolver) store(ctx context.Context, address, country string, resp *Response) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Put(ctx, address, country, resp); err != nil {
		zap.L().Debug("geocode cache store failed", zap.Error(err))
	}
}
