package routing

import (
	"github.com/lintang-b-s/elenav/pkg"
	da "github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/util"
)

type vertexInfo struct {
	dist     float64
	scanned  bool
	heapNode *da.PriorityQueueNode[da.Index]
}

// Dijkstra plain distance shortest path. not safe for concurrent use, create one per goroutine.
type Dijkstra struct {
	graph *da.Graph

	info    []vertexInfo
	parents ParentMap
	pq      *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		pq: da.NewFourAryHeapWithTieBreak(func(a, b da.Index) bool {
			return a < b
		}),
	}
}

func (d *Dijkstra) preallocate() {
	n := d.graph.NumberOfVertices()
	d.info = make([]vertexInfo, n)
	for i := range d.info {
		d.info[i].dist = pkg.INF_WEIGHT
	}
	d.parents = NewParentMap(n)
	d.pq.Clear()
	d.numSettledNodes = 0
}

// ShortestPath returns the distance-shortest route s -> t and its length in meters.
func (d *Dijkstra) ShortestPath(s, t da.Index) ([]da.Index, float64, error) {
	if !d.graph.HasVertex(s) || !d.graph.HasVertex(t) {
		return nil, 0, util.WrapErrorf(ErrVertexNotFound, util.ErrBadParamInput, "shortest path %d->%d", s, t)
	}

	d.preallocate()

	sNode := da.NewPriorityQueueNode(0, s)
	d.pq.Insert(sNode)
	d.info[s] = vertexInfo{dist: 0, heapNode: sNode}
	d.parents.SetRoot(s)

	for !d.pq.IsEmpty() {
		minNode, _ := d.pq.ExtractMin()
		u := minNode.GetItem()
		d.info[u].scanned = true
		d.numSettledNodes++

		if u == t {
			route, err := Reconstruct(d.parents, t)
			if err != nil {
				return nil, 0, err
			}
			return route, d.info[t].dist, nil
		}

		var heapErr error
		d.graph.ForOutEdgesOf(u, func(e *da.OutEdge) {
			v := e.GetHead()
			if d.info[v].scanned {
				return
			}

			newDist := d.info[u].dist + e.GetLength()
			vLabelled := da.Lt(d.info[v].dist, pkg.INF_WEIGHT)
			if vLabelled && newDist >= d.info[v].dist {
				return
			}

			d.parents.Set(v, u)
			if vLabelled {
				d.info[v].dist = newDist
				if err := d.pq.DecreaseKey(d.info[v].heapNode, newDist, v); err != nil && heapErr == nil {
					heapErr = err
				}
				return
			}

			vNode := da.NewPriorityQueueNode(newDist, v)
			d.pq.Insert(vNode)
			d.info[v] = vertexInfo{dist: newDist, heapNode: vNode}
		})
		if heapErr != nil {
			return nil, 0, util.WrapErrorf(heapErr, util.ErrInternalServerError,
				"shortest path %d->%d: heap position of a labelled vertex is stale", s, t)
		}
	}

	return nil, 0, util.WrapErrorf(ErrDisconnectedGraph, util.ErrNotFound, "no path from %d to %d", s, t)
}

func (d *Dijkstra) GetNumSettledNodes() int {
	return d.numSettledNodes
}
