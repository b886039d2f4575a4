package routing

import (
	"context"
	"math"

	"github.com/lintang-b-s/elenav/pkg"
	da "github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/geo"
	"github.com/lintang-b-s/elenav/pkg/util"
	"go.uber.org/zap"
)

// NearestVertexFinder snaps a coordinate to a graph vertex, returning the snap distance in meters.
type NearestVertexFinder interface {
	NearestVertex(lat, lon float64) (da.Index, float64, error)
}

// ShortestPathFinder returns the distance-shortest route between two vertices.
type ShortestPathFinder interface {
	ShortestPath(s, t da.Index) ([]da.Index, float64, error)
}

// RouteStats immutable summary of one route.
type RouteStats struct {
	Coordinates   [][2]float64 `json:"coordinates"` // [lon, lat]
	Distance      float64      `json:"distance"`
	ElevationGain float64      `json:"elevationGain"`
	ElevationDrop float64      `json:"elevationDrop"`

	route []da.Index
}

// Route returns a copy of the vertex ids of the route.
func (rs RouteStats) Route() []da.Index {
	r := make([]da.Index, len(rs.route))
	copy(r, rs.route)
	return r
}

func (rs RouteStats) IsEmpty() bool {
	return len(rs.route) == 0
}

// Snap where a query coordinate was snapped to.
type Snap struct {
	Vertex   da.Index
	Distance float64 // meter
}

// OptimizeResult both route bundles of one query plus the snapped endpoints.
type OptimizeResult struct {
	Shortest  RouteStats
	Best      RouteStats
	Strategy  WeightingStrategy
	Found     bool
	Budget    float64
	StartSnap Snap
	EndSnap   Snap
}

// RouteOptimizer finds the shortest route and the best elevation route within an overhead
// of the shortest distance.
type RouteOptimizer struct {
	graph    *da.Graph
	cost     *CostModel
	nearest  NearestVertexFinder
	selector *StrategySelector
	logger   *zap.Logger
	newSP    func() ShortestPathFinder
}

func NewRouteOptimizer(graph *da.Graph, nearest NearestVertexFinder, selector *StrategySelector,
	logger *zap.Logger) *RouteOptimizer {
	return &RouteOptimizer{
		graph:    graph,
		cost:     NewCostModel(graph),
		nearest:  nearest,
		selector: selector,
		logger:   logger,
		newSP: func() ShortestPathFinder {
			return NewDijkstra(graph)
		},
	}
}

// WithShortestPathFinder replaces the plain dijkstra used for the shortest route.
func (ro *RouteOptimizer) WithShortestPathFinder(newSP func() ShortestPathFinder) *RouteOptimizer {
	ro.newSP = newSP
	return ro
}

// Optimize snaps start and end to the graph, then runs OptimizeVertices.
func (ro *RouteOptimizer) Optimize(ctx context.Context, start, end geo.Coordinate, overheadPercent float64,
	objective pkg.Objective) (OptimizeResult, error) {
	if err := validateOverhead(overheadPercent); err != nil {
		return OptimizeResult{}, err
	}

	s, sDist, err := ro.nearest.NearestVertex(start.Lat, start.Lon)
	if err != nil {
		return OptimizeResult{}, err
	}
	t, tDist, err := ro.nearest.NearestVertex(end.Lat, end.Lon)
	if err != nil {
		return OptimizeResult{}, err
	}

	res, err := ro.OptimizeVertices(ctx, s, t, overheadPercent, objective)
	if err != nil {
		return OptimizeResult{}, err
	}
	res.StartSnap = Snap{Vertex: s, Distance: sDist}
	res.EndSnap = Snap{Vertex: t, Distance: tDist}
	return res, nil
}

// OptimizeVertices. Best is empty (and Found false) when no strategy finds a route within
// shortest * (1 + overheadPercent/100).
func (ro *RouteOptimizer) OptimizeVertices(ctx context.Context, s, t da.Index, overheadPercent float64,
	objective pkg.Objective) (OptimizeResult, error) {
	if err := validateOverhead(overheadPercent); err != nil {
		return OptimizeResult{}, err
	}

	shortestRoute, _, err := ro.newSP().ShortestPath(s, t)
	if err != nil {
		return OptimizeResult{}, err
	}
	shortestDist, err := ro.cost.PathLength(shortestRoute)
	if err != nil {
		return OptimizeResult{}, err
	}
	budget := shortestDist * (1 + overheadPercent/100)

	outcome, err := ro.selector.SelectBest(ctx, s, t, budget, objective)
	if err != nil {
		return OptimizeResult{}, err
	}

	shortest, err := ro.newRouteStats(shortestRoute, shortestDist)
	if err != nil {
		return OptimizeResult{}, err
	}

	best := RouteStats{Coordinates: [][2]float64{}, route: []da.Index{}}
	if outcome.Found {
		best = RouteStats{
			Coordinates:   ro.coordinates(outcome.Route),
			Distance:      outcome.Distance,
			ElevationGain: outcome.Gain,
			ElevationDrop: outcome.Drop,
			route:         outcome.Route,
		}
	}

	ro.logger.Info("route optimized",
		zap.String("objective", objective.String()),
		zap.Uint32("s", uint32(s)), zap.Uint32("t", uint32(t)),
		zap.Float64("budget", budget),
		zap.Float64("shortest_distance", shortest.Distance),
		zap.Float64("shortest_gain", shortest.ElevationGain),
		zap.Bool("found", outcome.Found),
		zap.Float64("best_distance", best.Distance),
		zap.Float64("best_gain", best.ElevationGain))

	return OptimizeResult{
		Shortest: shortest,
		Best:     best,
		Strategy: outcome.Strategy,
		Found:    outcome.Found,
		Budget:   budget,
	}, nil
}

func (ro *RouteOptimizer) newRouteStats(route []da.Index, distance float64) (RouteStats, error) {
	gain, _, err := ro.cost.Aggregate(route, pkg.GAIN_ONLY, false)
	if err != nil {
		return RouteStats{}, err
	}
	drop, _, err := ro.cost.Aggregate(route, pkg.DROP_ONLY, false)
	if err != nil {
		return RouteStats{}, err
	}
	return RouteStats{
		Coordinates:   ro.coordinates(route),
		Distance:      distance,
		ElevationGain: gain,
		ElevationDrop: drop,
		route:         route,
	}, nil
}

func (ro *RouteOptimizer) coordinates(route []da.Index) [][2]float64 {
	coords := make([][2]float64, 0, len(route))
	for _, v := range route {
		lat, lon := ro.graph.GetVertexCoordinates(v)
		coords = append(coords, [2]float64{lon, lat})
	}
	return coords
}

func (ro *RouteOptimizer) GetGraph() *da.Graph {
	return ro.graph
}

func (ro *RouteOptimizer) GetCostModel() *CostModel {
	return ro.cost
}

func validateOverhead(overheadPercent float64) error {
	if math.IsNaN(overheadPercent) || math.IsInf(overheadPercent, 0) || overheadPercent < 0 {
		return util.WrapErrorf(ErrInvalidOverhead, util.ErrBadParamInput, "overhead %v", overheadPercent)
	}
	return nil
}
