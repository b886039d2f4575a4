package osmparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="-7.7700" lon="110.3700"><tag k="ele" v="120"/></node>
  <node id="2" lat="-7.7710" lon="110.3700"><tag k="ele" v="125 m"/></node>
  <node id="3" lat="-7.7720" lon="110.3700"/>
  <node id="4" lat="-7.7720" lon="110.3710"><tag k="ele" v="131"/></node>
  <node id="5" lat="-7.7730" lon="110.3710"><tag k="ele" v="140"/></node>
  <node id="6" lat="-7.7740" lon="110.3710"><tag k="ele" v="141"/></node>
  <way id="100">
    <nd ref="1"/><nd ref="2"/><nd ref="3"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="101">
    <nd ref="3"/><nd ref="4"/>
    <tag k="highway" v="steps"/>
    <tag k="oneway:foot" v="yes"/>
  </way>
  <way id="102">
    <nd ref="4"/><nd ref="5"/>
    <tag k="highway" v="motorway"/>
  </way>
  <way id="103">
    <nd ref="5"/><nd ref="6"/>
    <tag k="highway" v="residential"/>
    <tag k="foot" v="no"/>
  </way>
</osm>`

func TestParseWalkableWays(t *testing.T) {
	p := NewOSMParser(zap.NewNop())
	require.NoError(t, p.Scan(strings.NewReader(testOSM), true))

	assert.Equal(t, 1, p.MissingElevations())
	assert.Equal(t, 1, p.SetElevations(map[int64]float64{3: 128, 5: 999}))
	assert.Equal(t, 0, p.MissingElevations())

	g, err := p.BuildGraph()
	require.NoError(t, err)

	// motorway and foot=no ways are dropped, so nodes 5 and 6 never become vertices
	assert.Equal(t, 4, g.NumberOfVertices())
	// 1<->2, 2<->3 and the one way 3->4
	assert.Equal(t, 5, g.NumberOfEdges())

	ids := p.GetNodeIDMap()
	v1, v2, v3, v4 := ids[1], ids[2], ids[3], ids[4]

	d12, ok := g.GetEdgeLength(v1, v2)
	require.True(t, ok)
	assert.InDelta(t, geo.CalculateHaversineDistanceMeters(-7.77, 110.37, -7.771, 110.37), d12, 1e-6)
	_, ok = g.GetEdgeLength(v2, v1)
	assert.True(t, ok)

	_, ok = g.GetEdgeLength(v3, v4)
	assert.True(t, ok)
	_, ok = g.GetEdgeLength(v4, v3)
	assert.False(t, ok, "oneway:foot must only add the forward edge")

	ele, ok := g.GetElevation(v2)
	require.True(t, ok)
	assert.Equal(t, 125.0, ele)
	ele, ok = g.GetElevation(v3)
	require.True(t, ok)
	assert.Equal(t, 128.0, ele)

	assert.Equal(t, int64(4), g.GetVertex(v4).GetOsmId())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.osm")
	require.NoError(t, os.WriteFile(path, []byte(testOSM), 0o644))

	g, err := NewOSMParser(zap.NewNop()).Parse(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumberOfVertices())

	missing := 0
	g.ForVertices(func(v *datastructure.Vertex) {
		if _, ok := v.GetElevation(); !ok {
			missing++
		}
	})
	assert.Equal(t, 1, missing)
}

func TestParseElevationTag(t *testing.T) {
	testCases := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"312", 312, true},
		{"312 m", 312, true},
		{"312.5m", 312.5, true},
		{" 7,5 ", 7.5, true},
		{"", 0, false},
		{"approx 300", 0, false},
	}

	for _, tt := range testCases {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseElevationTag(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadElevations(t *testing.T) {
	in := "osm_id,elevation\n# comment\n1, 120.5\n2,-3\n"

	got, err := ReadElevations(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, map[int64]float64{1: 120.5, 2: -3}, got)

	_, err = ReadElevations(strings.NewReader("1,abc\n"))
	assert.ErrorIs(t, err, ErrMalformedElevationFile)

	_, err = ReadElevations(strings.NewReader("1,2\n3\n"))
	assert.ErrorIs(t, err, ErrMalformedElevationFile)
}
