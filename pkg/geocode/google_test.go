package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleGeocode_OK(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"status": "OK",
			"results": [{
				"formatted_address": "Cl. 147 #11-10, Bogotá, Colombia",
				"geometry": {
					"location": {"lat": 4.7281, "lng": -74.0332},
					"location_type": "ROOFTOP",
					"viewport": {
						"northeast": {"lat": 4.7294, "lng": -74.0318},
						"southwest": {"lat": 4.7267, "lng": -74.0345}
					}
				},
				"place_id": "ChIJtest",
				"types": ["street_address"],
				"address_components": [
					{"long_name": "Bogotá", "short_name": "Bogotá", "types": ["locality"]}
				]
			}]
		}`)
	}))
	defer srv.Close()

	p := NewGoogleProvider("test-key", interceptClient(srv.URL, googleGeocodeURL))

	resp, err := p.Geocode(context.Background(), "Calle 147 #11-10, Bogotá, Colombia", "co")
	require.NoError(t, err)
	require.Equal(t, StatusOK, resp.Status)
	require.Len(t, resp.Results, 1)

	first := resp.Results[0]
	assert.InDelta(t, 4.7281, first.Geometry.Location.Lat, 0.0001)
	assert.InDelta(t, -74.0332, first.Geometry.Location.Lng, 0.0001)
	assert.Equal(t, "ChIJtest", first.PlaceID)

	assert.Equal(t, "Calle 147 #11-10, Bogotá, Colombia", gotQuery["address"][0])
	assert.Equal(t, "test-key", gotQuery["key"][0])
	assert.Equal(t, "country:co", gotQuery["components"][0])
}

func TestGoogleGeocode_NoCountryOmitsComponents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("components"))
		_, _ = io.WriteString(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer srv.Close()

	p := NewGoogleProvider("test-key", interceptClient(srv.URL, googleGeocodeURL))

	resp, err := p.Geocode(context.Background(), "nowhere", "")
	require.NoError(t, err)
	assert.Equal(t, StatusZeroResults, resp.Status)
	assert.Empty(t, resp.Results)
}

func TestGoogleGeocode_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewGoogleProvider("test-key", interceptClient(srv.URL, googleGeocodeURL))

	_, err := p.Geocode(context.Background(), "Calle 10", "co")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestGoogleGeocode_NoKey(t *testing.T) {
	p := NewGoogleProvider("", http.DefaultClient)

	assert.False(t, p.Available())

	_, err := p.Geocode(context.Background(), "Calle 10", "co")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
