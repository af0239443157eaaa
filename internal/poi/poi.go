// Package poi finds points of interest near a coordinate pair. The real
// backing store is a spatial data source; the interface keeps the matcher
// testable and the provider swappable.
package poi

import (
	"context"
	"sort"

	"github.com/catastro-latam/catastro-api/internal/model"
)

// Finder returns points of interest within radiusM meters of (lat, lng),
// ordered ascending by distance. The returned slice is finite and one-shot
// per call.
type Finder interface {
	FindNear(ctx context.Context, lat, lng, radiusM float64) ([]model.PointOfInterest, error)
}

// StaticFinder serves a fixed catalog of simulated POIs. It stands in for a
// spatial provider: the catalog entries carry pre-computed distances, so the
// query coordinates only matter to a real backend. Radius filtering and
// distance ordering follow the intended contract.
type StaticFinder struct {
	catalog []model.PointOfInterest
}

// NewStaticFinder creates a StaticFinder with the demo catalog.
func NewStaticFinder() *StaticFinder {
	return &StaticFinder{catalog: defaultCatalog()}
}

// FindNear implements Finder.
func (f *StaticFinder) FindNear(_ context.Context, _, _, radiusM float64) ([]model.PointOfInterest, error) {
	pois := make([]model.PointOfInterest, 0, len(f.catalog))
	for _, p := range f.catalog {
		if p.DistanceM <= radiusM {
			pois = append(pois, p)
		}
	}
	sort.Slice(pois, func(i, j int) bool { return pois[i].DistanceM < pois[j].DistanceM })
	return pois, nil
}

func defaultCatalog() []model.PointOfInterest {
	return []model.PointOfInterest{
		{Category: "Colegio", Name: "Colegio Distrital", DistanceM: 120.5, Address: "Calle 65 #10-45"},
		{Category: "Parque", Name: "Parque Vecinal", DistanceM: 200.3, Address: "Carrera 11 #66-20"},
		{Category: "Transporte", Name: "Estación Transmilenio", DistanceM: 350.8, Address: "Avenida Caracas #63-10"},
		{Category: "Comercio", Name: "Centro Comercial", DistanceM: 450.2, Address: "Calle 67 #9-30"},
	}
}
