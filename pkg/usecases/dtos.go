package usecases

import (
	"github.com/lintang-b-s/elenav/pkg/engine/routing"
	"github.com/lintang-b-s/elenav/pkg/geo"
	"github.com/paulmach/orb/geojson"
)

type RouteRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	// allowed extra distance over the shortest route, in percent
	Overhead  float64 `json:"overhead" validate:"min=0,max=1000"`
	Objective string  `json:"objective" validate:"required,oneof=maximize minimize"`
}

func (r RouteRequest) Origin() geo.Coordinate {
	return geo.NewCoordinate(r.OriginLat, r.OriginLon)
}

func (r RouteRequest) Destination() geo.Coordinate {
	return geo.NewCoordinate(r.DestinationLat, r.DestinationLon)
}

type RouteStatus int

const (
	// no route between origin and destination
	STATUS_NO_ROUTE RouteStatus = iota
	// shortest route only, nothing within the overhead
	STATUS_NO_ELEVATION_ROUTE
	STATUS_ELEVATION_ROUTE_FOUND
)

type RouteResponse struct {
	ShortestRoute  *geojson.Feature `json:"shortest_route"`
	ElevationRoute *geojson.Feature `json:"elevation_route"`

	ShortestPath  string `json:"shortest_path"`
	ElevationPath string `json:"elevation_path"`

	ShortestDistance float64 `json:"shortest_distance"`
	ShortestGain     float64 `json:"shortest_gain"`
	ShortestDrop     float64 `json:"shortest_drop"`

	ElevationDistance float64 `json:"elevation_distance"`
	ElevationGain     float64 `json:"elevation_gain"`
	ElevationDrop     float64 `json:"elevation_drop"`

	Strategy *routing.WeightingStrategy `json:"strategy,omitempty"`

	OriginSnapDistance      float64 `json:"origin_snap_distance"`
	DestinationSnapDistance float64 `json:"destination_snap_distance"`

	Status RouteStatus `json:"status"`
}

func newRouteFeature(rs routing.RouteStats, name string) *geojson.Feature {
	f := geo.NewLineStringFeature(rs.Coordinates)
	f.Properties["name"] = name
	f.Properties["distance"] = rs.Distance
	f.Properties["elevation_gain"] = rs.ElevationGain
	f.Properties["elevation_drop"] = rs.ElevationDrop
	return f
}

func polylineOf(rs routing.RouteStats) string {
	coords := make([]geo.Coordinate, 0, len(rs.Coordinates))
	for _, c := range rs.Coordinates {
		coords = append(coords, geo.NewCoordinate(c[1], c[0]))
	}
	return geo.PolylineFromCoords(coords)
}

func NewRouteResponse(res routing.OptimizeResult) RouteResponse {
	resp := RouteResponse{
		ShortestRoute:           newRouteFeature(res.Shortest, "shortest"),
		ElevationRoute:          newRouteFeature(res.Best, "elevation"),
		ShortestPath:            polylineOf(res.Shortest),
		ElevationPath:           polylineOf(res.Best),
		ShortestDistance:        res.Shortest.Distance,
		ShortestGain:            res.Shortest.ElevationGain,
		ShortestDrop:            res.Shortest.ElevationDrop,
		ElevationDistance:       res.Best.Distance,
		ElevationGain:           res.Best.ElevationGain,
		ElevationDrop:           res.Best.ElevationDrop,
		OriginSnapDistance:      res.StartSnap.Distance,
		DestinationSnapDistance: res.EndSnap.Distance,
		Status:                  STATUS_NO_ELEVATION_ROUTE,
	}
	if res.Found {
		strategy := res.Strategy
		resp.Strategy = &strategy
		resp.Status = STATUS_ELEVATION_ROUTE_FOUND
	}
	return resp
}

// NewNoRouteResponse empty features and zero stats.
func NewNoRouteResponse() RouteResponse {
	return RouteResponse{
		ShortestRoute:  geo.NewLineStringFeature(nil),
		ElevationRoute: geo.NewLineStringFeature(nil),
		Status:         STATUS_NO_ROUTE,
	}
}

// BatchResult one entry of OptimizeBatch. Error is the message of a failed request.
type BatchResult struct {
	Request  RouteRequest   `json:"request"`
	Response *RouteResponse `json:"response,omitempty"`
	Error    string         `json:"error,omitempty"`
}
