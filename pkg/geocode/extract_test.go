package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLocation_Success(t *testing.T) {
	resp := &Response{
		Status: StatusOK,
		Results: []Result{
			{
				FormattedAddress: "Cl. 147 #11-10, Bogotá, Colombia",
				Geometry:         Geometry{Location: LatLng{Lat: 4.7281, Lng: -74.0332}},
				AddressComponents: []AddressComponent{
					{LongName: "Bogotá", ShortName: "Bogotá", Types: []string{"locality", "political"}},
					{LongName: "Colombia", ShortName: "CO", Types: []string{"country"}},
				},
			},
			// Second result must be ignored: first wins.
			{
				FormattedAddress: "elsewhere",
				Geometry:         Geometry{Location: LatLng{Lat: 0, Lng: 0}},
			},
		},
	}

	location := ExtractLocation(resp)
	require.True(t, location.Success)
	assert.Empty(t, location.Error)
	assert.Equal(t, "Cl. 147 #11-10, Bogotá, Colombia", location.FormattedAddress)
	assert.InDelta(t, 4.7281, location.Coordinates.Lat, 0.0001)
	assert.InDelta(t, -74.0332, location.Coordinates.Lng, 0.0001)
	assert.Equal(t, map[string]string{
		"locality":  "Bogotá",
		"political": "Bogotá",
		"country":   "Colombia",
	}, location.AddressComponents)
}

func TestExtractLocation_Failures(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
	}{
		{"nil response", nil},
		{"zero results status", &Response{Status: StatusZeroResults, Results: []Result{}}},
		{"non-OK status with results", &Response{Status: "REQUEST_DENIED", Results: []Result{{}}}},
		{"OK status but empty list", &Response{Status: StatusOK, Results: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			location := ExtractLocation(tt.resp)
			assert.False(t, location.Success)
			assert.NotEmpty(t, location.Error)
			assert.Nil(t, location.Coordinates)
		})
	}
}
