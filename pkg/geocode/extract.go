package geocode

// LocationData is the flattened view of a canonical response that downstream
// lookups consume. Error carries a human-readable message; no provider
// internals leak through.
type LocationData struct {
	Success           bool              `json:"success"`
	Error             string            `json:"error,omitempty"`
	Coordinates       *LatLng           `json:"coordinates,omitempty"`
	FormattedAddress  string            `json:"formatted_address,omitempty"`
	AddressComponents map[string]string `json:"address_components,omitempty"`
}

// ExtractLocation extracts coordinates, formatted address and a flattened
// component map from a canonical response. Only the first (highest-ranked)
// result is used; provider order breaks ties. A non-OK status or empty result
// list yields a failure, not an error.
func ExtractLocation(resp *Response) LocationData {
	if resp == nil || resp.Status != StatusOK || len(resp.Results) == 0 {
		return LocationData{
			Success: false,
			Error:   "no results found for the given address",
		}
	}

	first := resp.Results[0]

	components := make(map[string]string)
	for _, component := range first.AddressComponents {
		for _, componentType := range component.Types {
			components[componentType] = component.LongName
		}
	}

	location := first.Geometry.Location
	return LocationData{
		Success:           true,
		Coordinates:       &LatLng{Lat: location.Lat, Lng: location.Lng},
		FormattedAddress:  first.FormattedAddress,
		AddressComponents: components,
	}
}
