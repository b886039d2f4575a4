package routing

import (
	"math"

	"github.com/lintang-b-s/elenav/pkg"
	da "github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/util"
)

// CostModel computes the cost of moving between two adjacent vertices.
type CostModel struct {
	graph *da.Graph
}

func NewCostModel(graph *da.Graph) *CostModel {
	return &CostModel{graph: graph}
}

// Cost returns the cost of u->v under mode. distance needs an edge u->v,
// the elevation modes need an elevation on both vertices.
func (cm *CostModel) Cost(u, v da.Index, mode pkg.CostMode) (float64, error) {
	if !cm.graph.HasVertex(u) || !cm.graph.HasVertex(v) {
		return 0, util.WrapErrorf(ErrVertexNotFound, util.ErrBadParamInput, "cost %d->%d", u, v)
	}

	if mode == pkg.DISTANCE {
		length, ok := cm.graph.GetEdgeLength(u, v)
		if !ok {
			return 0, util.WrapErrorf(ErrEdgeNotFound, util.ErrInternalServerError, "edge %d->%d", u, v)
		}
		return length, nil
	}

	delta, err := cm.elevationDelta(u, v)
	if err != nil {
		return 0, err
	}

	switch mode {
	case pkg.ELEVATION_DELTA:
		return delta, nil
	case pkg.GAIN_ONLY:
		return math.Max(0, delta), nil
	case pkg.DROP_ONLY:
		return math.Max(0, -delta), nil
	case pkg.ABSOLUTE_DELTA:
		return math.Abs(delta), nil
	default:
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown cost mode %v", mode)
	}
}

func (cm *CostModel) elevationDelta(u, v da.Index) (float64, error) {
	eu, ok := cm.graph.GetElevation(u)
	if !ok {
		return 0, util.WrapErrorf(ErrMissingElevation, util.ErrInternalServerError, "vertex %d", u)
	}
	ev, ok := cm.graph.GetElevation(v)
	if !ok {
		return 0, util.WrapErrorf(ErrMissingElevation, util.ErrInternalServerError, "vertex %d", v)
	}
	return ev - eu, nil
}

// edgeCosts is every per-edge quantity the strategy weights need, computed in one go.
type edgeCosts struct {
	length float64
	delta  float64
	gain   float64
	drop   float64
}

func (cm *CostModel) edgeCostsOf(u da.Index, e *da.OutEdge) (edgeCosts, error) {
	delta, err := cm.elevationDelta(u, e.GetHead())
	if err != nil {
		return edgeCosts{}, err
	}
	return edgeCosts{
		length: e.GetLength(),
		delta:  delta,
		gain:   math.Max(0, delta),
		drop:   math.Max(0, -delta),
	}, nil
}
