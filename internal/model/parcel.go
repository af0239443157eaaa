package model

// Parcel is one cadastral unit as loaded from the dataset. The collection is
// loaded once at startup and never mutated afterwards, so it is shared across
// request handlers without locking.
type Parcel struct {
	Chip             string  `json:"chip"`
	ParcelNumber     string  `json:"numero_predial"`
	Address          string  `json:"direccion"`
	Neighborhood     string  `json:"barrio"`
	LandAreaM2       float64 `json:"area_terreno"`
	BuiltAreaM2      float64 `json:"area_construida"`
	UseCode          string  `json:"uso_codigo"`
	Score            int     `json:"-"`
	ConstructionYear string  `json:"anio_construccion"`
}

// ParcelInfo is a Parcel formatted for output, with the derived attributes
// computed per lookup.
type ParcelInfo struct {
	Chip             string  `json:"chip"`
	ParcelNumber     string  `json:"numero_predial"`
	Address          string  `json:"direccion"`
	Neighborhood     string  `json:"barrio"`
	LandAreaM2       float64 `json:"area_terreno"`
	BuiltAreaM2      float64 `json:"area_construida"`
	UseCode          string  `json:"uso_codigo"`
	UseDescription   string  `json:"uso_descripcion"`
	Stratum          int     `json:"estrato"`
	ConstructionYear string  `json:"anio_construccion"`
	EstimatedValue   float64 `json:"valor_catastral"`
}

// ParcelResult is the structured outcome of a parcel lookup.
type ParcelResult struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Parcel  *ParcelInfo `json:"predio,omitempty"`
}
