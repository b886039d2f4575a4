package pkg

import (
	"fmt"
	"strings"
)

const (
	INF_WEIGHT float64 = 1e15

	// walking graphs are metric, so distance weights are scaled by this factor for the
	// minimize-elevation strategies. elevation deltas then dominate short segments.
	MINIMIZE_LENGTH_FACTOR = 0.1

	DEFAULT_SEARCH_RADIUS_KM     = 0.05
	DEFAULT_MAX_SEARCH_RADIUS_KM = 3.2
	DEFAULT_LEAF_BBOX_RADIUS_KM  = 0.005
)

// enum of the optimization objective
type Objective uint8

const (
	MAXIMIZE Objective = iota
	MINIMIZE
)

func (o Objective) String() string {
	switch o {
	case MAXIMIZE:
		return "maximize"
	case MINIMIZE:
		return "minimize"
	default:
		return fmt.Sprintf("objective(%d)", o)
	}
}

func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "maximize", "max":
		return MAXIMIZE, nil
	case "minimize", "min":
		return MINIMIZE, nil
	default:
		return 0, fmt.Errorf("unknown objective %q", s)
	}
}

// enum of cost semantics between two adjacent vertices
type CostMode uint8

const (
	DISTANCE        CostMode = iota
	ELEVATION_DELTA          // elev(v) - elev(u)
	GAIN_ONLY                // max(0, elev(v) - elev(u))
	DROP_ONLY                // max(0, elev(u) - elev(v))
	ABSOLUTE_DELTA           // |elev(v) - elev(u)|
)

func (m CostMode) String() string {
	switch m {
	case DISTANCE:
		return "distance"
	case ELEVATION_DELTA:
		return "elevation-delta"
	case GAIN_ONLY:
		return "gain-only"
	case DROP_ONLY:
		return "drop-only"
	case ABSOLUTE_DELTA:
		return "absolute-delta"
	default:
		return fmt.Sprintf("costmode(%d)", m)
	}
}

// enum buat osm highway yang bisa dilewati pejalan kaki
type OsmHighwayType uint8

const (
	FOOTWAY OsmHighwayType = iota
	PATH
	PEDESTRIAN
	STEPS
	TRACK
	LIVING_STREET
	RESIDENTIAL
	SERVICE
	UNCLASSIFIED
	TERTIARY
	SECONDARY
	PRIMARY
	CYCLEWAY
	ROAD
	UNKNOWN
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "footway":
		return FOOTWAY
	case "path":
		return PATH
	case "pedestrian":
		return PEDESTRIAN
	case "steps":
		return STEPS
	case "track":
		return TRACK
	case "living_street":
		return LIVING_STREET
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "unclassified":
		return UNCLASSIFIED
	case "tertiary", "tertiary_link":
		return TERTIARY
	case "secondary", "secondary_link":
		return SECONDARY
	case "primary", "primary_link":
		return PRIMARY
	case "cycleway":
		return CYCLEWAY
	case "road":
		return ROAD
	default:
		return UNKNOWN
	}
}
