package geocode

import (
	"context"
	"net/http"
	"strings"
)

// interceptClient returns an HTTP client that reroutes any request whose URL
// starts with prefix to the given httptest server, keeping the remainder of
// the URL intact. Provider code keeps its real endpoint constants.
func interceptClient(serverURL, prefix string) *http.Client {
	return &http.Client{
		Transport: &interceptTransport{serverURL: serverURL, prefix: prefix},
	}
}

type interceptTransport struct {
	serverURL string
	prefix    string
}

func (t *interceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rest, found := strings.CutPrefix(req.URL.String(), t.prefix)
	if !found {
		return http.DefaultTransport.RoundTrip(req)
	}

	target, err := req.URL.Parse(t.serverURL + rest)
	if err != nil {
		return nil, err
	}
	out := req.Clone(req.Context())
	out.URL = target
	out.Host = target.Host
	return http.DefaultTransport.RoundTrip(out)
}

// stubProvider is a canned Provider for resolver tests.
type stubProvider struct {
	name      string
	available bool
	resp      *Response
	err       error
	calls     int
}

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Available() bool { return s.available }

func (s *stubProvider) Geocode(_ context.Context, _, _ string) (*Response, error) {
	s.calls++
	return s.resp, s.err
}

// okResponse builds a single-result OK response at the given coordinates.
func okResponse(lat, lng float64, formatted string) *Response {
	return &Response{
		Status: StatusOK,
		Results: []Result{{
			FormattedAddress: formatted,
			Geometry: Geometry{
				Location:     LatLng{Lat: lat, Lng: lng},
				LocationType: "ROOFTOP",
			},
		}},
	}
}
