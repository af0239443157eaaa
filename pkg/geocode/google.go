package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleProvider geocodes via the Google Geocoding API. Google already
// answers in the canonical shape, so its response is decoded directly.
type GoogleProvider struct {
	key        string
	httpClient *http.Client
}

// NewGoogleProvider creates a GoogleProvider. An empty key makes the provider
// unavailable.
func NewGoogleProvider(key string, hc *http.Client) *GoogleProvider {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &GoogleProvider{key: key, httpClient: hc}
}

// Name implements Provider.
func (p *GoogleProvider) Name() string { return "google" }

// Available implements Provider.
func (p *GoogleProvider) Available() bool { return p.key != "" }

// Geocode implements Provider.
func (p *GoogleProvider) Geocode(ctx context.Context, address, country string) (*Response, error) {
	if p.key == "" {
		return nil, eris.New("geocode: google api key not configured")
	}

	params := url.Values{
		"address": {address},
		"key":     {p.key},
	}
	if country != "" {
		params.Set("components", "country:"+country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleGeocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google build request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: google returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google read body")
	}

	var canonical Response
	if err := json.Unmarshal(body, &canonical); err != nil {
		return nil, eris.Wrap(err, "geocode: google parse response")
	}

	return &canonical, nil
}
