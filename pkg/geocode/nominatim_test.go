package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const nominatimBody = `[
	{
		"place_id": 98765,
		"lat": "4.7281",
		"lon": "-74.0332",
		"display_name": "Calle 147, Usaquén, Bogotá, Colombia",
		"class": "highway",
		"address": {
			"road": "Calle 147",
			"city": "Bogotá",
			"country": "Colombia"
		}
	}
]`

// newUnpacedNominatim swaps the provider's limiter for an unbounded one so
// tests don't wait out the 1 req/s pacing.
func newUnpacedNominatim(hc *http.Client) *NominatimProvider {
	p := NewNominatimProvider(hc, "catastro-api-test/1.0")
	p.limiter = rate.NewLimiter(rate.Inf, 1)
	return p
}

func TestNominatimGeocode_CanonicalShape(t *testing.T) {
	var gotUA string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, nominatimBody)
	}))
	defer srv.Close()

	p := newUnpacedNominatim(interceptClient(srv.URL, nominatimSearchURL))

	resp, err := p.Geocode(context.Background(), "Calle 147 #11-10, Bogotá, Colombia", "co")
	require.NoError(t, err)
	require.Equal(t, StatusOK, resp.Status)
	require.Len(t, resp.Results, 1)

	first := resp.Results[0]
	assert.Equal(t, "Calle 147, Usaquén, Bogotá, Colombia", first.FormattedAddress)
	assert.InDelta(t, 4.7281, first.Geometry.Location.Lat, 0.0001)
	assert.InDelta(t, -74.0332, first.Geometry.Location.Lng, 0.0001)
	assert.Equal(t, "APPROXIMATE", first.Geometry.LocationType)
	assert.Equal(t, "98765", first.PlaceID)
	assert.Equal(t, []string{"highway"}, first.Types)

	// Synthesized ±0.01° viewport around the point.
	assert.InDelta(t, 4.7381, first.Geometry.Viewport.Northeast.Lat, 0.0001)
	assert.InDelta(t, -74.0232, first.Geometry.Viewport.Northeast.Lng, 0.0001)
	assert.InDelta(t, 4.7181, first.Geometry.Viewport.Southwest.Lat, 0.0001)
	assert.InDelta(t, -74.0432, first.Geometry.Viewport.Southwest.Lng, 0.0001)

	assert.ElementsMatch(t, []AddressComponent{
		{LongName: "Calle 147", ShortName: "Calle 147", Types: []string{"road"}},
		{LongName: "Bogotá", ShortName: "Bogotá", Types: []string{"city"}},
		{LongName: "Colombia", ShortName: "Colombia", Types: []string{"country"}},
	}, first.AddressComponents)

	assert.Equal(t, "catastro-api-test/1.0", gotUA)
	assert.Equal(t, "1", gotQuery["addressdetails"][0])
	assert.Equal(t, "5", gotQuery["limit"][0])
	assert.Equal(t, "json", gotQuery["format"][0])
	assert.Equal(t, "co", gotQuery["countrycodes"][0])
}

func TestNominatimGeocode_EmptyListIsZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	p := newUnpacedNominatim(interceptClient(srv.URL, nominatimSearchURL))

	resp, err := p.Geocode(context.Background(), "no such place anywhere", "")
	require.NoError(t, err)
	assert.Equal(t, StatusZeroResults, resp.Status)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestNominatimGeocode_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newUnpacedNominatim(interceptClient(srv.URL, nominatimSearchURL))

	_, err := p.Geocode(context.Background(), "Calle 10", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestNominatimGeocode_PacingDelay(t *testing.T) {
	if testing.Short() {
		t.Skip("pacing test waits on the real limiter")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	// Real limiter: the first token is drained at construction, so even the
	// first call waits a full pacing interval.
	p := NewNominatimProvider(interceptClient(srv.URL, nominatimSearchURL), "catastro-api-test/1.0")

	start := time.Now()
	_, err := p.Geocode(context.Background(), "Calle 147 #11-10, Bogotá, Colombia", "co")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 900*time.Millisecond)
}

func TestConvertNominatim_MalformedCoordinates(t *testing.T) {
	resp := convertNominatim([]nominatimResult{{Lat: "not-a-number", Lon: ""}})
	require.Equal(t, StatusOK, resp.Status)
	assert.Zero(t, resp.Results[0].Geometry.Location.Lat)
	assert.Zero(t, resp.Results[0].Geometry.Location.Lng)
}
