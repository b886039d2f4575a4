package spatialindex

import (
	"errors"
	"math"
	"sort"

	"github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/geo"
	"github.com/lintang-b-s/elenav/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var ErrNoNearbyVertex = errors.New("spatialindex: no graph vertex near the query point")

type Rtree struct {
	tr              *rtree.RTreeG[datastructure.Index]
	graph           *datastructure.Graph
	searchRadius    float64 // km
	maxSearchRadius float64 // km
}

// NewRtree. searchRadius is the first query radius (km); it doubles until maxSearchRadius.
func NewRtree(searchRadius, maxSearchRadius float64) *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	if maxSearchRadius < searchRadius {
		maxSearchRadius = searchRadius
	}
	return &Rtree{
		tr:              &tr,
		searchRadius:    searchRadius,
		maxSearchRadius: maxSearchRadius,
	}
}

// Build. build r-tree, with each leaf having bounding box with radius boundingBoxRadius (in km)
// around one graph vertex.
func (rt *Rtree) Build(graph *datastructure.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("vertices", graph.NumberOfVertices()))
	rt.graph = graph

	n := graph.NumberOfVertices()
	graph.ForVertices(func(v *datastructure.Vertex) {
		if n >= 10 && int(v.GetID())%(n/10) == 0 {
			log.Debug("Building R-tree spatial index...",
				zap.Float64("progress", math.Round(float64(v.GetID())/float64(n)*100)))
		}
		lat, lon := v.GetLat(), v.GetLon()
		lowerLat, lowerLon := geo.GetDestinationPoint(lat, lon, 225, boundingBoxRadius)
		upperLat, upperLon := geo.GetDestinationPoint(lat, lon, 45, boundingBoxRadius)

		rt.tr.Insert([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat}, v.GetID())
	})

	log.Info("R-tree spatial index built.", zap.Int("items", rt.tr.Len()))
}

// SearchWithinRadius search for vertices whose leaf box intersects the box enclosing the circle of
// radius (in km) around (qLat, qLon). the box corners are radius*sqrt(2) away on the diagonals.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	corner := radius * math.Sqrt2
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, corner)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, corner)

	results := make([]datastructure.Index, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data datastructure.Index) bool {
			results = append(results, data)
			return true
		})
	return results
}

// NearestVertex returns the vertex closest (haversine) to the query point and its distance in meters.
// ties go to the lower vertex id.
func (rt *Rtree) NearestVertex(qLat, qLon float64) (datastructure.Index, float64, error) {
	if rt.graph == nil {
		return datastructure.INVALID_VERTEX_ID, 0, util.WrapErrorf(ErrNoNearbyVertex, util.ErrInternalServerError,
			"r-tree not built")
	}

	var (
		found    bool
		bestV    datastructure.Index
		bestDist float64
	)
	for radius := rt.searchRadius; radius <= rt.maxSearchRadius; radius *= 2 {
		cands := rt.SearchWithinRadius(qLat, qLon, radius)
		if len(cands) == 0 {
			continue
		}

		dists := make([]float64, len(cands))
		for i, v := range cands {
			lat, lon := rt.graph.GetVertexCoordinates(v)
			dists[i] = geo.CalculateHaversineDistanceMeters(qLat, qLon, lat, lon)
		}

		order := make([]int, len(cands))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool {
			if dists[order[i]] != dists[order[j]] {
				return dists[order[i]] < dists[order[j]]
			}
			return cands[order[i]] < cands[order[j]]
		})

		found, bestV, bestDist = true, cands[order[0]], dists[order[0]]
		// a vertex outside the search box can only be closer than one farther than radius
		if bestDist <= radius*1000 {
			return bestV, bestDist, nil
		}
	}

	if found {
		return bestV, bestDist, nil
	}

	return datastructure.INVALID_VERTEX_ID, 0, util.WrapErrorf(ErrNoNearbyVertex, util.ErrNotFound,
		"no vertex within %.3f km of %f,%f", rt.maxSearchRadius, qLat, qLon)
}
