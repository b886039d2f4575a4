package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	testCases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expectedKM             float64
		delta                  float64
	}{
		{name: "same point", lat1: -7.77, lon1: 110.37, lat2: -7.77, lon2: 110.37, expectedKM: 0, delta: 1e-12},
		{name: "one degree of latitude", lat1: 0, lon1: 0, lat2: 1, lon2: 0, expectedKM: 111.195, delta: 1e-3},
		{name: "yogyakarta to jakarta", lat1: -7.7956, lon1: 110.3695, lat2: -6.2088, lon2: 106.8456,
			expectedKM: 426.0, delta: 5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			km := CalculateHaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expectedKM, km, tt.delta)
			assert.InDelta(t, km*1000, CalculateHaversineDistanceMeters(tt.lat1, tt.lon1, tt.lat2, tt.lon2), 1e-9)
			assert.InDelta(t, km, CalculateHaversineDistance(tt.lat2, tt.lon2, tt.lat1, tt.lon1), 1e-12)
		})
	}
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(-7.77, 110.37, 45, 1)
	assert.InDelta(t, 1.0, CalculateHaversineDistance(-7.77, 110.37, lat, lon), 1e-6)
	assert.Greater(t, lat, -7.77)
	assert.Greater(t, lon, 110.37)

	lat, lon = GetDestinationPoint(-7.77, 110.37, 225, 1)
	assert.Less(t, lat, -7.77)
	assert.Less(t, lon, 110.37)

	_, lon = GetDestinationPoint(0, 179.999, 90, 1)
	assert.Less(t, lon, 0.0)
}

func TestCoordinates(t *testing.T) {
	coords := NewCoordinates([]float64{1, 2}, []float64{3, 4})
	assert.Equal(t, []Coordinate{{Lat: 1, Lon: 3}, {Lat: 2, Lon: 4}}, coords)
	assert.Equal(t, [2]float64{3, 1}, coords[0].LonLat())
	assert.Equal(t, 2.0, coords[1].GetLat())
	assert.Equal(t, 4.0, coords[1].GetLon())
}
