package osmparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/elenav/pkg/util"
)

var ErrMalformedElevationFile = errors.New("osmparser: malformed elevation file")

// parseElevationTag parses an osm ele tag ("312", "312 m", "312.5m"). feet are not converted
// because the osm wiki requires meters.
func parseElevationTag(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, false
	}
	val = strings.TrimSpace(strings.TrimSuffix(val, "m"))
	ele, err := util.StringToFloat64(strings.ReplaceAll(val, ",", "."))
	if err != nil {
		return 0, false
	}
	return ele, true
}

// ReadElevationFile reads "osm_node_id,elevation" rows. a header row is allowed.
func ReadElevationFile(filename string) (map[int64]float64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadElevations(f)
}

func ReadElevations(r io.Reader) (map[int64]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	elevations := make(map[int64]float64)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedElevationFile, "line %d", line)
		}

		osmID, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		if err != nil {
			if line == 1 {
				// header
				continue
			}
			return nil, util.WrapErrorf(err, ErrMalformedElevationFile, "line %d osm id", line)
		}
		ele, err := util.StringToFloat64(rec[1])
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedElevationFile, "line %d elevation", line)
		}
		elevations[osmID] = ele
	}
	return elevations, nil
}

// SetElevations adds elevations for way nodes that have no ele tag. call before BuildGraph.
func (p *OsmParser) SetElevations(elevations map[int64]float64) int {
	added := 0
	for osmID := range p.acceptedNodeMap {
		if _, ok := p.nodeElevation[osmID]; ok {
			continue
		}
		if ele, ok := elevations[osmID]; ok {
			p.nodeElevation[osmID] = ele
			added++
		}
	}
	return added
}

// MissingElevations counts scanned way nodes that still have no elevation.
func (p *OsmParser) MissingElevations() int {
	missing := 0
	for osmID := range p.acceptedNodeMap {
		if _, ok := p.nodeElevation[osmID]; !ok {
			missing++
		}
	}
	return missing
}

func (p *OsmParser) String() string {
	return fmt.Sprintf("osmparser(ways=%d, nodes=%d, elevations=%d)",
		len(p.ways), len(p.acceptedNodeMap), len(p.nodeElevation))
}
