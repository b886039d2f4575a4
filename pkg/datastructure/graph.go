package datastructure

import (
	"math"
	"sort"

	"github.com/lintang-b-s/elenav/pkg/geo"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
)

type Vertex struct {
	lat          float64
	lon          float64
	elevation    float64 // meter
	hasElevation bool
	firstOut     Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	id           Index
	osmId        int64
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func NewVertexWithElevation(lat, lon, elevation float64, id Index) *Vertex {
	return &Vertex{
		lat:          lat,
		lon:          lon,
		elevation:    elevation,
		hasElevation: true,
		id:           id,
	}
}

func (v *Vertex) SetOsmId(osmId int64) {
	v.osmId = osmId
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetOsmId() int64 {
	return v.osmId
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

// GetElevation returns the elevation in meters and whether it is known.
func (v *Vertex) GetElevation() (float64, bool) {
	return v.elevation, v.hasElevation
}

func (v *Vertex) GetFirstOut() Index {
	return v.firstOut
}

// OutEdge. directed edge u->head, dist in meter
type OutEdge struct {
	dist   float64
	edgeId Index
	head   Index
}

func NewOutEdge(edgeId, head Index, dist float64) *OutEdge {
	return &OutEdge{
		edgeId: edgeId,
		head:   head,
		dist:   dist,
	}
}

func (e *OutEdge) GetLength() float64 {
	return e.dist
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetEdgeId() Index {
	return e.edgeId
}

// Graph. directed, read-only after Build. outEdges of vertex v are
// outEdges[vertices[v].firstOut : vertices[v+1].firstOut]; vertices has one trailing dummy.
type Graph struct {
	vertices      []*Vertex
	outEdges      []*OutEdge
	boundingBox   *BoundingBox
	parallelEdges int
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

// NumberOfParallelEdges is how many duplicate (u,v) edges were folded at build time.
func (g *Graph) NumberOfParallelEdges() int {
	return g.parallelEdges
}

func (g *Graph) HasVertex(v Index) bool {
	return v < Index(g.NumberOfVertices())
}

func (g *Graph) GetVertex(v Index) *Vertex {
	return g.vertices[v]
}

func (g *Graph) GetVertexCoordinates(v Index) (float64, float64) {
	return g.vertices[v].lat, g.vertices[v].lon
}

func (g *Graph) GetVertexCoordinate(v Index) geo.Coordinate {
	return geo.NewCoordinate(g.vertices[v].lat, g.vertices[v].lon)
}

func (g *Graph) GetElevation(v Index) (float64, bool) {
	return g.vertices[v].GetElevation()
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

func (g *Graph) GetOutEdge(e Index) *OutEdge {
	return g.outEdges[e]
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}

// ForOutEdgesOf calls handle for every out edge of u, in head order.
func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(g.outEdges[e])
	}
}

// ForVertices calls handle for every vertex in id order.
func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for i := 0; i < g.NumberOfVertices(); i++ {
		handle(g.vertices[i])
	}
}

// GetEdgeLength returns the effective length of edge u->v.
func (g *Graph) GetEdgeLength(u, v Index) (float64, bool) {
	if !g.HasVertex(u) || !g.HasVertex(v) {
		return 0, false
	}
	lo, hi := int(g.vertices[u].firstOut), int(g.vertices[u+1].firstOut)
	edges := g.outEdges[lo:hi]
	i := sort.Search(len(edges), func(i int) bool {
		return edges[i].head >= v
	})
	if i < len(edges) && edges[i].head == v {
		return edges[i].dist, true
	}
	return 0, false
}

type rawEdge struct {
	from, to Index
	dist     float64
	order    int
}

// GraphBuilder collects vertices and edges and builds a Graph.
type GraphBuilder struct {
	vertices []*Vertex
	edges    []rawEdge
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]*Vertex, 0),
		edges:    make([]rawEdge, 0),
	}
}

func NewGraphBuilderWithSize(numVertices, numEdges int) *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]*Vertex, 0, numVertices),
		edges:    make([]rawEdge, 0, numEdges),
	}
}

// AddVertex appends a vertex with a known elevation and returns its id.
func (b *GraphBuilder) AddVertex(lat, lon, elevation float64) Index {
	id := Index(len(b.vertices))
	b.vertices = append(b.vertices, NewVertexWithElevation(lat, lon, elevation, id))
	return id
}

// AddVertexWithoutElevation appends a vertex whose elevation is not known yet.
func (b *GraphBuilder) AddVertexWithoutElevation(lat, lon float64) Index {
	id := Index(len(b.vertices))
	b.vertices = append(b.vertices, NewVertex(lat, lon, id))
	return id
}

func (b *GraphBuilder) SetOsmId(v Index, osmId int64) {
	b.vertices[v].SetOsmId(osmId)
}

func (b *GraphBuilder) SetElevation(v Index, elevation float64) {
	b.vertices[v].elevation = elevation
	b.vertices[v].hasElevation = true
}

func (b *GraphBuilder) NumberOfVertices() int {
	return len(b.vertices)
}

func (b *GraphBuilder) AddEdge(from, to Index, dist float64) {
	b.edges = append(b.edges, rawEdge{from: from, to: to, dist: dist, order: len(b.edges)})
}

// AddBidirectedEdge adds from->to and to->from with the same length.
func (b *GraphBuilder) AddBidirectedEdge(from, to Index, dist float64) {
	b.AddEdge(from, to, dist)
	b.AddEdge(to, from, dist)
}

// Build sorts edges by (tail, head) and folds parallel edges into one with the smallest
// length; on equal lengths the first-declared edge wins.
func (b *GraphBuilder) Build() (*Graph, error) {
	n := len(b.vertices)
	for _, e := range b.edges {
		if int(e.from) >= n || int(e.to) >= n {
			return nil, ErrEdgeEndpointNotFound
		}
		if e.dist < 0 || math.IsNaN(e.dist) {
			return nil, ErrNegativeEdgeLength
		}
	}

	edges := make([]rawEdge, len(b.edges))
	copy(edges, b.edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		if edges[i].to != edges[j].to {
			return edges[i].to < edges[j].to
		}
		if edges[i].dist != edges[j].dist {
			return edges[i].dist < edges[j].dist
		}
		return edges[i].order < edges[j].order
	})

	g := &Graph{
		vertices: make([]*Vertex, n+1),
		outEdges: make([]*OutEdge, 0, len(edges)),
	}
	copy(g.vertices, b.vertices)
	g.vertices[n] = NewVertex(0, 0, Index(n))

	k := 0
	for v := 0; v < n; v++ {
		g.vertices[v].firstOut = Index(len(g.outEdges))
		for k < len(edges) && int(edges[k].from) == v {
			e := edges[k]
			k++
			last := len(g.outEdges) - 1
			if last >= int(g.vertices[v].firstOut) && g.outEdges[last].head == e.to {
				g.parallelEdges++
				continue
			}
			g.outEdges = append(g.outEdges, NewOutEdge(Index(len(g.outEdges)), e.to, e.dist))
		}
	}
	g.vertices[n].firstOut = Index(len(g.outEdges))
	g.boundingBox = computeBoundingBox(b.vertices)

	return g, nil
}

func computeBoundingBox(vertices []*Vertex) *BoundingBox {
	if len(vertices) == 0 {
		return NewBoundingBox(0, 0, 0, 0)
	}
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		minLat = math.Min(minLat, v.lat)
		minLon = math.Min(minLon, v.lon)
		maxLat = math.Max(maxLat, v.lat)
		maxLon = math.Max(maxLon, v.lon)
	}
	return NewBoundingBox(minLat, minLon, maxLat, maxLon)
}
