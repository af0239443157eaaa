package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/catastro-latam/catastro-api/internal/catastro"
	"github.com/catastro-latam/catastro-api/pkg/geocode"
)

// addressRequest is the body shared by the address-driven endpoints. Ciudad
// and pais are optional refinements appended to the street address.
type addressRequest struct {
	Direccion string `json:"direccion"`
	Ciudad    string `json:"ciudad"`
	Pais      string `json:"pais"`
}

// fullAddress composes "direccion[, ciudad][, pais]".
func (a addressRequest) fullAddress() string {
	full := a.Direccion
	if a.Ciudad != "" {
		full += ", " + a.Ciudad
	}
	if a.Pais != "" {
		full += ", " + a.Pais
	}
	return full
}

// countryBias picks the ISO code used to restrict geocoding. A request that
// names its own country is never restricted to the configured default; the
// named country already rides along in the composed address text.
func (s *Server) countryBias(a addressRequest) string {
	if a.Pais != "" {
		return ""
	}
	return s.defaultCountry
}

// coordsRequest is the body shared by the coordinate-driven endpoints.
// Pointers distinguish absent fields from zero coordinates.
type coordsRequest struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Radius float64  `json:"radius"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "Catastro API",
		"version":     "1.0.0",
		"description": "REST API for cadastral lookups by address",
		"endpoints": []string{
			"/api/catastro/geocode",
			"/api/catastro/predio/direccion",
			"/api/catastro/predio/coordenadas",
			"/api/catastro/pois/cercanos",
			"/api/catastro/consulta/completa",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAddress(w, r)
	if !ok {
		return
	}

	resp, err := s.geocoder.Resolve(r.Context(), req.fullAddress(), s.countryBias(req))
	if err != nil {
		zap.L().Warn("geocode request failed",
			zap.String("address", req.Direccion),
			zap.Error(err),
		)
		writeJSON(w, http.StatusOK, geocode.LocationData{
			Success: false,
			Error:   "could not geocode the given address",
		})
		return
	}

	writeJSON(w, http.StatusOK, geocode.ExtractLocation(resp))
}

func (s *Server) handleParcelByAddress(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAddress(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.svc.FindByAddress(r.Context(), req.fullAddress()))
}

func (s *Server) handleParcelByCoords(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCoords(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.svc.FindNearest(r.Context(), *req.Lat, *req.Lng))
}

func (s *Server) handleNearbyPOIs(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCoords(w, r)
	if !ok {
		return
	}

	radius := req.Radius
	if radius <= 0 {
		radius = catastro.DefaultPOIRadiusM
	}
	writeJSON(w, http.StatusOK, s.svc.FindPOIs(r.Context(), *req.Lat, *req.Lng, radius))
}

func (s *Server) handleFullLookup(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAddress(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.svc.FullLookup(r.Context(), req.fullAddress(), s.countryBias(req)))
}

// decodeAddress decodes an address body, writing a 400 on missing or
// malformed input. The bool reports whether the request may proceed.
func decodeAddress(w http.ResponseWriter, r *http.Request) (addressRequest, bool) {
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInputError(w, "invalid request body")
		return addressRequest{}, false
	}
	if req.Direccion == "" {
		writeInputError(w, "direccion is required")
		return addressRequest{}, false
	}
	return req, true
}

func decodeCoords(w http.ResponseWriter, r *http.Request) (coordsRequest, bool) {
	var req coordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInputError(w, "invalid request body")
		return coordsRequest{}, false
	}
	if req.Lat == nil || req.Lng == nil {
		writeInputError(w, "lat and lng are required")
		return coordsRequest{}, false
	}
	return req, true
}

func writeInputError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"error":   msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("response encode failed", zap.Error(err))
	}
}
