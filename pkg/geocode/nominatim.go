package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	nominatimSearchURL = "https://nominatim.openstreetmap.org/search"

	// Synthesized viewport half-width for Nominatim results, in degrees.
	nominatimViewportDelta = 0.01
)

// NominatimProvider geocodes via the public Nominatim/OpenStreetMap endpoint.
// The service's usage policy requires a descriptive User-Agent and at most
// one request per second; pacing is enforced with a token bucket owned by the
// provider, so concurrent callers queue cooperatively instead of each
// sleeping on its own.
type NominatimProvider struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// NewNominatimProvider creates a NominatimProvider paced at 1 req/s.
func NewNominatimProvider(hc *http.Client, userAgent string) *NominatimProvider {
	if hc == nil {
		hc = http.DefaultClient
	}
	l := rate.NewLimiter(rate.Every(time.Second), 1)
	// Drain the initial token so the very first call also waits a full
	// second, matching the advertised pacing.
	l.Allow()
	return &NominatimProvider{httpClient: hc, userAgent: userAgent, limiter: l}
}

// Name implements Provider.
func (p *NominatimProvider) Name() string { return "nominatim" }

// Available implements Provider.
func (p *NominatimProvider) Available() bool { return true }

// nominatimResult is one entry of the heterogeneous Nominatim result list.
// Coordinates arrive as strings and place_id as a bare number.
type nominatimResult struct {
	PlaceID     json.Number       `json:"place_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Class       string            `json:"class"`
	Address     map[string]string `json:"address"`
}

// Geocode implements Provider. The result list is converted to the canonical
// shape; an empty list maps to ZERO_RESULTS, never an error.
func (p *NominatimProvider) Geocode(ctx context.Context, address, country string) (*Response, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim rate limit")
	}

	params := url.Values{
		"q":              {address},
		"format":         {"json"},
		"addressdetails": {"1"},
		"limit":          {"5"},
	}
	if country != "" {
		params.Set("countrycodes", country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nominatimSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim build request")
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim read body")
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, eris.Wrap(err, "geocode: nominatim parse response")
	}

	return convertNominatim(results), nil
}

// convertNominatim maps Nominatim's result list into the canonical response,
// synthesizing the viewport and address components Google would have sent.
func convertNominatim(results []nominatimResult) *Response {
	if len(results) == 0 {
		return &Response{Status: StatusZeroResults, Results: []Result{}}
	}

	canonical := make([]Result, 0, len(results))
	for _, r := range results {
		lat := parseCoord(r.Lat)
		lng := parseCoord(r.Lon)

		components := make([]AddressComponent, 0, len(r.Address))
		for componentType, value := range r.Address {
			components = append(components, AddressComponent{
				LongName:  value,
				ShortName: value,
				Types:     []string{componentType},
			})
		}

		canonical = append(canonical, Result{
			FormattedAddress: r.DisplayName,
			Geometry: Geometry{
				Location:     LatLng{Lat: lat, Lng: lng},
				LocationType: "APPROXIMATE",
				Viewport: Viewport{
					Northeast: LatLng{Lat: lat + nominatimViewportDelta, Lng: lng + nominatimViewportDelta},
					Southwest: LatLng{Lat: lat - nominatimViewportDelta, Lng: lng - nominatimViewportDelta},
				},
			},
			PlaceID:           r.PlaceID.String(),
			Types:             strings.Split(r.Class, ","),
			AddressComponents: components,
		})
	}

	return &Response{Status: StatusOK, Results: canonical}
}

func parseCoord(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
