package osmparser

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/lintang-b-s/elenav/pkg"
	"github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/geo"
	"github.com/lintang-b-s/elenav/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

type osmWay struct {
	nodes   []int64
	forward bool
	back    bool
}

// OsmParser builds a walkable graph from openstreetmap ways. every node of an accepted way
// becomes a vertex so elevation is kept at full resolution.
type OsmParser struct {
	wayNodeMap      map[int64]struct{}
	acceptedNodeMap map[int64]NodeCoord
	nodeElevation   map[int64]float64
	nodeIDMap       map[int64]datastructure.Index
	ways            []osmWay
	logger          *zap.Logger
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]struct{}),
		acceptedNodeMap: make(map[int64]NodeCoord),
		nodeElevation:   make(map[int64]float64),
		nodeIDMap:       make(map[int64]datastructure.Index),
		ways:            make([]osmWay, 0),
		logger:          logger,
	}
}

// Parse reads an .osm.pbf file (or an .osm xml file) and builds the walking graph. elevations,
// keyed by osm node id, fill in nodes without an ele tag; it may be nil.
func (p *OsmParser) Parse(mapFile string, elevations map[int64]float64) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	isXML := strings.HasSuffix(mapFile, ".osm") || strings.HasSuffix(mapFile, ".xml")
	if err := p.Scan(f, isXML); err != nil {
		return nil, err
	}
	if elevations != nil {
		added := p.SetElevations(elevations)
		p.logger.Info("elevations added from file", zap.Int("nodes", added))
	}
	if missing := p.MissingElevations(); missing > 0 {
		p.logger.Warn("way nodes without elevation", zap.Int("nodes", missing))
	}
	return p.BuildGraph()
}

// Scan reads r twice: ways first, then the nodes they use.
func (p *OsmParser) Scan(r io.ReadSeeker, isXML bool) error {
	newScanner := func() (osm.Scanner, error) {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		if isXML {
			return osmxml.New(context.Background(), r), nil
		}
		// must not be parallel
		return osmpbf.New(context.Background(), r, 0), nil
	}

	scanner, err := newScanner()
	if err != nil {
		return err
	}
	if err := p.scanWays(scanner); err != nil {
		return err
	}

	scanner, err = newScanner()
	if err != nil {
		return err
	}
	return p.scanNodes(scanner)
}

func (p *OsmParser) scanWays(scanner osm.Scanner) error {
	defer scanner.Close()

	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		forward, back := footDirection(way)
		nodes := make([]int64, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			p.wayNodeMap[int64(node.ID)] = struct{}{}
			nodes = append(nodes, int64(node.ID))
		}
		p.ways = append(p.ways, osmWay{nodes: nodes, forward: forward, back: back})
	}
	return scanner.Err()
}

func (p *OsmParser) scanNodes(scanner osm.Scanner) error {
	defer scanner.Close()

	countNodes := 0
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
			continue
		}
		if (countNodes+1)%500000 == 0 {
			p.logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
		}
		countNodes++

		p.acceptedNodeMap[int64(node.ID)] = NodeCoord{lat: node.Lat, lon: node.Lon}
		if ele, ok := parseElevationTag(node.Tags.Find("ele")); ok {
			p.nodeElevation[int64(node.ID)] = ele
		}
	}
	return scanner.Err()
}

// BuildGraph turns the scanned ways into graph edges. way nodes missing from the file are
// skipped together with the segments touching them.
func (p *OsmParser) BuildGraph() (*datastructure.Graph, error) {
	b := datastructure.NewGraphBuilderWithSize(len(p.acceptedNodeMap), 2*len(p.acceptedNodeMap))

	vertexOf := func(osmID int64) datastructure.Index {
		if v, ok := p.nodeIDMap[osmID]; ok {
			return v
		}
		coord := p.acceptedNodeMap[osmID]
		var v datastructure.Index
		if ele, ok := p.nodeElevation[osmID]; ok {
			v = b.AddVertex(coord.lat, coord.lon, ele)
		} else {
			v = b.AddVertexWithoutElevation(coord.lat, coord.lon)
		}
		b.SetOsmId(v, osmID)
		p.nodeIDMap[osmID] = v
		return v
	}

	skipped := 0
	for _, way := range p.ways {
		for i := 0; i+1 < len(way.nodes); i++ {
			fromID, toID := way.nodes[i], way.nodes[i+1]
			if fromID == toID {
				continue
			}
			from, okFrom := p.acceptedNodeMap[fromID]
			to, okTo := p.acceptedNodeMap[toID]
			if !okFrom || !okTo {
				skipped++
				continue
			}

			dist := geo.CalculateHaversineDistanceMeters(from.lat, from.lon, to.lat, to.lon)
			u, v := vertexOf(fromID), vertexOf(toID)
			if way.forward {
				b.AddEdge(u, v, dist)
			}
			if way.back {
				b.AddEdge(v, u, dist)
			}
		}
	}
	if skipped > 0 {
		p.logger.Warn("way segments with missing nodes skipped", zap.Int("segments", skipped))
	}

	graph, err := b.Build()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "build walking graph")
	}

	p.logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	p.logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())
	return graph, nil
}

func (p *OsmParser) GetNodeIDMap() map[int64]datastructure.Index {
	return p.nodeIDMap
}

func isRestricted(value string) bool {
	if value == "no" || value == "private" {
		return true
	}
	return false
}

func acceptOsmWay(way *osm.Way) bool {
	if way.Tags.Find("area") == "yes" {
		return false
	}
	foot := way.Tags.Find("foot")
	if isRestricted(foot) {
		return false
	}
	if isRestricted(way.Tags.Find("access")) && foot != "yes" && foot != "designated" {
		return false
	}

	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if pkg.GetHighwayType(highway) != pkg.UNKNOWN {
		return true
	}
	// motorways & trunks only when walking is tagged as allowed
	return foot == "yes" || foot == "designated"
}

// footDirection. pedestrians ignore the vehicle oneway tag.
func footDirection(way *osm.Way) (forward, back bool) {
	switch way.Tags.Find("oneway:foot") {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return false, true
	default:
		return true, true
	}
}
