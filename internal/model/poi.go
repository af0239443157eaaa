package model

// PointOfInterest is a place near a queried coordinate pair.
type PointOfInterest struct {
	Category  string  `json:"tipo"`
	Name      string  `json:"nombre"`
	DistanceM float64 `json:"distancia"`
	Address   string  `json:"direccion"`
}

// POIResult is the structured outcome of a points-of-interest query.
type POIResult struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	POIs    []PointOfInterest `json:"pois"`
}
