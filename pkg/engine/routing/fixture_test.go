package routing

import (
	"testing"

	da "github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEdge struct {
	from, to da.Index
	dist     float64
}

// buildUndirectedGraph vertex i gets elevation elevations[i] and sits on a small grid.
func buildUndirectedGraph(t *testing.T, elevations []float64, edges []testEdge) *da.Graph {
	t.Helper()
	b := da.NewGraphBuilder()
	for i, ele := range elevations {
		b.AddVertex(-6.2+float64(i)*0.001, 106.8+float64(i%3)*0.001, ele)
	}
	for _, e := range edges {
		b.AddBidirectedEdge(e.from, e.to, e.dist)
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

// toyGraph 7 vertices, elevations [0,0,0,1,1,3,4]. 0 -> 2 has four routes:
// 0-1-2 (6.0, flat), 0-3-4-2 (6.727), 0-5-2 (8.48), 0-6-2 (10.0, climbs 4).
func toyGraph(t *testing.T) *da.Graph {
	return buildUndirectedGraph(t,
		[]float64{0, 0, 0, 1, 1, 3, 4},
		[]testEdge{
			{0, 1, 3.0}, {1, 2, 3.0},
			{0, 3, 1.414}, {3, 4, 4.0}, {4, 2, 1.313},
			{0, 5, 4.24}, {5, 2, 4.24},
			{0, 6, 5.0}, {6, 2, 5.0},
		})
}

// hillGraph 0 -> 1 directly (10 m, flat) or over hill 2 (6 m + 6 m, 5 m up and down).
func hillGraph(t *testing.T) *da.Graph {
	return buildUndirectedGraph(t,
		[]float64{0, 0, 5},
		[]testEdge{
			{0, 1, 10.0},
			{0, 2, 6.0}, {2, 1, 6.0},
		})
}

// valleyGraph 0 -> 1 over hill 2 (5 m + 5 m, 5 m up) or flat around through 3 (6 m + 6 m).
func valleyGraph(t *testing.T) *da.Graph {
	return buildUndirectedGraph(t,
		[]float64{0, 0, 5, 0},
		[]testEdge{
			{0, 2, 5.0}, {2, 1, 5.0},
			{0, 3, 6.0}, {3, 1, 6.0},
		})
}

// exactNearest snaps to the vertex with exactly the query coordinate.
type exactNearest struct {
	graph *da.Graph
}

func (en exactNearest) NearestVertex(lat, lon float64) (da.Index, float64, error) {
	for v := da.Index(0); v < da.Index(en.graph.NumberOfVertices()); v++ {
		vLat, vLon := en.graph.GetVertexCoordinates(v)
		if vLat == lat && vLon == lon {
			return v, 0, nil
		}
	}
	return da.INVALID_VERTEX_ID, 0, ErrVertexNotFound
}

func newTestOptimizer(g *da.Graph, opts ...SelectorOption) *RouteOptimizer {
	logger := zap.NewNop()
	return NewRouteOptimizer(g, exactNearest{graph: g}, NewStrategySelector(g, logger, opts...), logger)
}
