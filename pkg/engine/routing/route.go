package routing

import (
	"github.com/lintang-b-s/elenav/pkg"
	da "github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/util"
)

const (
	// ROOT_PARENT marks the vertex a search started from.
	ROOT_PARENT da.Index = da.INVALID_VERTEX_ID - 1
	// NO_PARENT marks a vertex the search never reached.
	NO_PARENT da.Index = da.INVALID_VERTEX_ID
)

// ParentMap. parents[v] is the vertex v was reached from.
type ParentMap []da.Index

func NewParentMap(n int) ParentMap {
	pm := make(ParentMap, n)
	for i := range pm {
		pm[i] = NO_PARENT
	}
	return pm
}

func (pm ParentMap) SetRoot(v da.Index) {
	pm[v] = ROOT_PARENT
}

func (pm ParentMap) Set(v, parent da.Index) {
	pm[v] = parent
}

func (pm ParentMap) Get(v da.Index) da.Index {
	return pm[v]
}

func (pm ParentMap) Reached(v da.Index) bool {
	return int(v) < len(pm) && pm[v] != NO_PARENT
}

// Reconstruct walks parent links from end back to the root and returns the route root -> end.
func Reconstruct(parents ParentMap, end da.Index) ([]da.Index, error) {
	route := make([]da.Index, 0, 16)
	cur := end
	for steps := 0; ; steps++ {
		if int(cur) >= len(parents) || parents[cur] == NO_PARENT {
			return nil, util.WrapErrorf(ErrDisconnectedParent, util.ErrInternalServerError,
				"vertex %d has no parent", cur)
		}
		if steps >= len(parents) {
			return nil, util.WrapErrorf(ErrDisconnectedParent, util.ErrInternalServerError,
				"cycle in parent chain of %d", end)
		}
		route = append(route, cur)
		if parents[cur] == ROOT_PARENT {
			break
		}
		cur = parents[cur]
	}

	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route, nil
}

// Aggregate sums the cost of consecutive route pairs under mode. pieces holds the per-edge
// costs when piecewise is set.
func (cm *CostModel) Aggregate(route []da.Index, mode pkg.CostMode, piecewise bool) (float64, []float64, error) {
	var pieces []float64
	if piecewise {
		pieces = make([]float64, 0, len(route))
	}

	total := 0.0
	for i := 0; i+1 < len(route); i++ {
		c, err := cm.Cost(route[i], route[i+1], mode)
		if err != nil {
			return 0, nil, err
		}
		total += c
		if piecewise {
			pieces = append(pieces, c)
		}
	}
	return total, pieces, nil
}

// PathLength is the total edge length of route in meters.
func (cm *CostModel) PathLength(route []da.Index) (float64, error) {
	total, _, err := cm.Aggregate(route, pkg.DISTANCE, false)
	return total, err
}
