// Package catastro matches addresses and coordinates against the in-memory
// cadastral dataset and enriches matches with derived attributes.
package catastro

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/catastro-latam/catastro-api/internal/model"
	"github.com/catastro-latam/catastro-api/internal/normalize"
	"github.com/catastro-latam/catastro-api/internal/poi"
	"github.com/catastro-latam/catastro-api/pkg/geocode"
)

// Failure messages surfaced to callers. Human-readable, no internals.
const (
	errNoData        = "no cadastral data loaded"
	errCannotGeocode = "could not geocode the given address"
	errNoParcelMatch = "no cadastral information found for the given address"
	errPOILookup     = "could not look up nearby points of interest"
)

// DefaultPOIRadiusM is the search radius used when the caller passes none.
const DefaultPOIRadiusM = 500.0

// Geocoder is the slice of the geocode resolver the matcher needs.
type Geocoder interface {
	Resolve(ctx context.Context, address, country string) (*geocode.Response, error)
}

// Service answers parcel lookups over a dataset loaded once at startup.
// The dataset and its normalized addresses are immutable after construction,
// so a single Service is safely shared across concurrent requests.
type Service struct {
	parcels    []model.Parcel
	normalized []string
	geocoder   Geocoder
	pois       poi.Finder
	rng        *rand.Rand
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithRandSource overrides the random source used by FindNearest. Tests use
// a fixed seed for deterministic selection.
func WithRandSource(src rand.Source) ServiceOption {
	return func(s *Service) { s.rng = rand.New(src) }
}

// NewService creates a Service over the given parcels. Record addresses are
// normalized once here rather than per query.
func NewService(parcels []model.Parcel, geocoder Geocoder, finder poi.Finder, opts ...ServiceOption) *Service {
	normalized := make([]string, len(parcels))
	for i, p := range parcels {
		normalized[i] = normalize.Address(p.Address)
	}

	s := &Service{
		parcels:    parcels,
		normalized: normalized,
		geocoder:   geocoder,
		pois:       finder,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByAddress looks up a parcel by free-text address. Priority order:
// exact normalized match, then substring containment (record contains query),
// then geocoding the raw address and resolving by coordinates. Dataset order
// breaks ties at each tier.
func (s *Service) FindByAddress(ctx context.Context, address string) model.ParcelResult {
	if len(s.parcels) == 0 {
		return model.ParcelResult{Success: false, Error: errNoData}
	}

	query := normalize.Address(address)

	for i, recordAddr := range s.normalized {
		if recordAddr == query {
			zap.L().Debug("parcel exact match",
				zap.String("query", query),
				zap.String("chip", s.parcels[i].Chip),
			)
			return model.ParcelResult{Success: true, Parcel: formatParcel(s.parcels[i])}
		}
	}

	for i, recordAddr := range s.normalized {
		if strings.Contains(recordAddr, query) {
			zap.L().Debug("parcel partial match",
				zap.String("query", query),
				zap.String("chip", s.parcels[i].Chip),
			)
			return model.ParcelResult{Success: true, Parcel: formatParcel(s.parcels[i])}
		}
	}

	location, ok := s.resolveLocation(ctx, address, "")
	if !ok {
		return model.ParcelResult{Success: false, Error: errCannotGeocode}
	}

	return s.FindNearest(ctx, location.Coordinates.Lat, location.Coordinates.Lng)
}

// FindNearest returns the parcel nearest to the given coordinates.
//
// Placeholder: the dataset carries no geometry, so there is nothing to index
// spatially. The current implementation ignores its inputs and draws one
// record uniformly at random.
func (s *Service) FindNearest(ctx context.Context, lat, lng float64) model.ParcelResult {
	_ = ctx
	if len(s.parcels) == 0 {
		return model.ParcelResult{Success: false, Error: errNoData}
	}

	p := s.parcels[s.rng.Intn(len(s.parcels))]
	zap.L().Debug("parcel selected by coordinates",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
		zap.String("chip", p.Chip),
	)
	return model.ParcelResult{Success: true, Parcel: formatParcel(p)}
}

// FindPOIs returns points of interest within radiusM meters of the
// coordinates, ascending by distance. radiusM <= 0 uses DefaultPOIRadiusM.
func (s *Service) FindPOIs(ctx context.Context, lat, lng, radiusM float64) model.POIResult {
	if radiusM <= 0 {
		radiusM = DefaultPOIRadiusM
	}

	pois, err := s.pois.FindNear(ctx, lat, lng, radiusM)
	if err != nil {
		zap.L().Warn("poi lookup failed", zap.Error(err))
		return model.POIResult{Success: false, Error: errPOILookup, POIs: []model.PointOfInterest{}}
	}
	return model.POIResult{Success: true, POIs: pois}
}

// FullLookup chains geocode → parcel-by-coordinates → nearby POIs,
// short-circuiting with a structured failure when geocoding misses. A parcel
// miss still reports the resolved address and coordinates.
func (s *Service) FullLookup(ctx context.Context, address, country string) model.LookupResult {
	location, ok := s.resolveLocation(ctx, address, country)
	if !ok {
		return model.LookupResult{Success: false, Error: errCannotGeocode}
	}

	coords := &model.Coordinates{
		Lat: location.Coordinates.Lat,
		Lng: location.Coordinates.Lng,
	}
	echo := &model.AddressEcho{Original: address, Formatted: location.FormattedAddress}
	if echo.Formatted == "" {
		echo.Formatted = address
	}

	parcelResult := s.FindNearest(ctx, coords.Lat, coords.Lng)
	if !parcelResult.Success {
		return model.LookupResult{
			Success:     false,
			Error:       errNoParcelMatch,
			Address:     echo,
			Coordinates: coords,
		}
	}

	poiResult := s.FindPOIs(ctx, coords.Lat, coords.Lng, DefaultPOIRadiusM)

	return model.LookupResult{
		Success:     true,
		Address:     echo,
		Coordinates: coords,
		Parcel:      parcelResult.Parcel,
		POIs:        poiResult.POIs,
	}
}

// resolveLocation geocodes an address and extracts location data, reporting
// only success or failure; provider errors are logged, never propagated.
func (s *Service) resolveLocation(ctx context.Context, address, country string) (geocode.LocationData, bool) {
	resp, err := s.geocoder.Resolve(ctx, address, country)
	if err != nil {
		zap.L().Warn("geocoding failed",
			zap.String("address", address),
			zap.Error(err),
		)
		return geocode.LocationData{}, false
	}

	location := geocode.ExtractLocation(resp)
	if !location.Success || location.Coordinates == nil {
		return geocode.LocationData{}, false
	}
	return location, true
}
