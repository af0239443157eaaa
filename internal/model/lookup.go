package model

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressEcho reports both the address as received and as confirmed by the
// geocoding provider.
type AddressEcho struct {
	Original  string `json:"original"`
	Formatted string `json:"formateada"`
}

// LookupResult is the outcome of the composed geocode → parcel → POI lookup.
// On geocoding failure only Success and Error are set; on parcel-match failure
// the address and coordinates resolved so far are still reported.
type LookupResult struct {
	Success     bool              `json:"success"`
	Error       string            `json:"error,omitempty"`
	Address     *AddressEcho      `json:"direccion,omitempty"`
	Coordinates *Coordinates      `json:"coordenadas,omitempty"`
	Parcel      *ParcelInfo       `json:"predio,omitempty"`
	POIs        []PointOfInterest `json:"pois_cercanos,omitempty"`
}
