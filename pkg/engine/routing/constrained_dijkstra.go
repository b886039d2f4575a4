package routing

import (
	"fmt"

	"github.com/lintang-b-s/elenav/pkg"
	da "github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/util"
)

// WeightingStrategy one edge-weight formula (ID 1..3) plus whether the weight is added to
// the priority of the vertex it is relaxed from.
type WeightingStrategy struct {
	ID                  uint8 `json:"id"`
	CarryParentPriority bool  `json:"carry_parent_priority"`
}

func (ws WeightingStrategy) String() string {
	return fmt.Sprintf("strategy(%d,carry=%t)", ws.ID, ws.CarryParentPriority)
}

var strategies = [...]WeightingStrategy{
	{ID: 1, CarryParentPriority: true},
	{ID: 2, CarryParentPriority: true},
	{ID: 3, CarryParentPriority: true},
	{ID: 1, CarryParentPriority: false},
	{ID: 2, CarryParentPriority: false},
	{ID: 3, CarryParentPriority: false},
}

// Strategies returns the six weighting strategies in the order they are tried.
func Strategies() []WeightingStrategy {
	s := make([]WeightingStrategy, len(strategies))
	copy(s, strategies[:])
	return s
}

// weight of one edge. may be negative when the elevation delta beats the length.
func (ws WeightingStrategy) weight(objective pkg.Objective, c edgeCosts) float64 {
	if objective == pkg.MAXIMIZE {
		switch ws.ID {
		case 1:
			return c.length - c.delta
		case 2:
			return (c.length - c.delta) * c.length
		default:
			return c.length + c.drop
		}
	}

	scaled := c.length * pkg.MINIMIZE_LENGTH_FACTOR
	switch ws.ID {
	case 1:
		return scaled + c.delta
	case 2:
		// ((0.1l + d) * l) * 0.1, in this order
		return (scaled + c.delta) * c.length * pkg.MINIMIZE_LENGTH_FACTOR
	default:
		return scaled + c.gain
	}
}

func (ws WeightingStrategy) valid() bool {
	return ws.ID >= 1 && ws.ID <= 3
}

// SearchResult of a ConstrainedSearch run that reached the target.
type SearchResult struct {
	Priority float64
	Distance float64 // meter
	Parents  ParentMap
}

// ConstrainedSearch dijkstra over strategy weights that never lets the accumulated distance
// exceed a budget. not safe for concurrent use, create one per goroutine.
type ConstrainedSearch struct {
	graph *da.Graph
	cost  *CostModel

	prior   []float64
	labeled []bool
	visited []bool
	pq      *da.MinHeap[da.SearchKey]

	numSettledNodes int
}

func NewConstrainedSearch(graph *da.Graph) *ConstrainedSearch {
	return &ConstrainedSearch{
		graph: graph,
		cost:  NewCostModel(graph),
		pq:    da.NewFourAryHeapWithTieBreak(da.SearchKeyLess),
	}
}

func (cs *ConstrainedSearch) preallocate() {
	n := cs.graph.NumberOfVertices()
	if len(cs.prior) != n {
		cs.prior = make([]float64, n)
		cs.labeled = make([]bool, n)
		cs.visited = make([]bool, n)
	} else {
		clear(cs.labeled)
		clear(cs.visited)
	}
	cs.pq.Clear()
	cs.numSettledNodes = 0
}

// Search runs one strategy from s to t. found is false when the budget rules out every
// route to t; that is not an error.
func (cs *ConstrainedSearch) Search(s, t da.Index, budget float64, objective pkg.Objective,
	strategy WeightingStrategy) (SearchResult, bool, error) {
	if !cs.graph.HasVertex(s) || !cs.graph.HasVertex(t) {
		return SearchResult{}, false, util.WrapErrorf(ErrVertexNotFound, util.ErrBadParamInput,
			"constrained search %d->%d", s, t)
	}
	if !strategy.valid() {
		return SearchResult{}, false, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown %v", strategy)
	}

	cs.preallocate()
	parents := NewParentMap(cs.graph.NumberOfVertices())

	parents.SetRoot(s)
	cs.prior[s] = 0
	cs.labeled[s] = true
	cs.pq.Insert(da.NewPriorityQueueNode(0, da.NewSearchKey(s, 0)))

	for !cs.pq.IsEmpty() {
		minNode, _ := cs.pq.ExtractMin()
		priority := minNode.GetRank()
		key := minNode.GetItem()
		u, dist := key.GetNode(), key.GetDist()

		// stale entry, u was settled through a better label
		if cs.visited[u] {
			continue
		}
		cs.visited[u] = true
		cs.numSettledNodes++

		if u == t {
			return SearchResult{Priority: priority, Distance: dist, Parents: parents}, true, nil
		}

		var relaxErr error
		cs.graph.ForOutEdgesOf(u, func(e *da.OutEdge) {
			if relaxErr != nil {
				return
			}
			v := e.GetHead()
			if cs.visited[v] {
				return
			}

			newDist := dist + e.GetLength()
			if newDist > budget {
				return
			}

			c, err := cs.cost.edgeCostsOf(u, e)
			if err != nil {
				relaxErr = err
				return
			}
			w := strategy.weight(objective, c)
			if strategy.CarryParentPriority {
				w += priority
			}

			if cs.labeled[v] && w >= cs.prior[v] {
				return
			}

			cs.labeled[v] = true
			cs.prior[v] = w
			parents.Set(v, u)
			cs.pq.Insert(da.NewPriorityQueueNode(w, da.NewSearchKey(v, newDist)))
		})
		if relaxErr != nil {
			return SearchResult{}, false, relaxErr
		}
	}

	return SearchResult{}, false, nil
}

func (cs *ConstrainedSearch) GetNumSettledNodes() int {
	return cs.numSettledNodes
}
