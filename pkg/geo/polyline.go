package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes coords with the google polyline algorithm (precision 5).
func PolylineFromCoords(coords []Coordinate) string {
	s := make([][]float64, 0, len(coords))
	for _, c := range coords {
		s = append(s, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(s))
}

// CoordsFromPolyline decodes an encoded polyline back into coordinates.
func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	s, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, 0, len(s))
	for _, c := range s {
		coords = append(coords, NewCoordinate(c[0], c[1]))
	}
	return coords, nil
}

// NewLineStringFeature builds a GeoJSON LineString feature from [lon, lat] pairs.
// an empty route still produces a valid feature with no coordinates.
func NewLineStringFeature(lonLats [][2]float64) *geojson.Feature {
	ls := make(orb.LineString, 0, len(lonLats))
	for _, p := range lonLats {
		ls = append(ls, orb.Point{p[0], p[1]})
	}
	f := geojson.NewFeature(ls)
	f.Properties = geojson.Properties{}
	return f
}
