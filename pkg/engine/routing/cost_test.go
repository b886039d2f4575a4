package routing

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/elenav/pkg"
	da "github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCost(t *testing.T) {
	cm := NewCostModel(toyGraph(t))

	testCases := []struct {
		name     string
		u, v     da.Index
		mode     pkg.CostMode
		expected float64
	}{
		{name: "distance of an edge", u: 0, v: 1, mode: pkg.DISTANCE, expected: 3.0},
		{name: "distance of the reverse edge", u: 2, v: 6, mode: pkg.DISTANCE, expected: 5.0},
		{name: "signed delta uphill", u: 0, v: 3, mode: pkg.ELEVATION_DELTA, expected: 1.0},
		{name: "signed delta downhill", u: 5, v: 4, mode: pkg.ELEVATION_DELTA, expected: -2.0},
		{name: "drop only", u: 6, v: 2, mode: pkg.DROP_ONLY, expected: 4.0},
		{name: "drop only uphill is zero", u: 2, v: 6, mode: pkg.DROP_ONLY, expected: 0.0},
		{name: "gain only", u: 1, v: 4, mode: pkg.GAIN_ONLY, expected: 1.0},
		{name: "gain only downhill is zero", u: 6, v: 0, mode: pkg.GAIN_ONLY, expected: 0.0},
		{name: "absolute delta", u: 2, v: 6, mode: pkg.ABSOLUTE_DELTA, expected: 4.0},
		{name: "absolute delta downhill", u: 6, v: 2, mode: pkg.ABSOLUTE_DELTA, expected: 4.0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cm.Cost(tt.u, tt.v, tt.mode)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestCostEdgeNotFound(t *testing.T) {
	cm := NewCostModel(toyGraph(t))

	_, err := cm.Cost(1, 4, pkg.DISTANCE)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEdgeNotFound))
	assert.True(t, errors.Is(err, util.ErrInternalServerError))
}

func TestCostMissingElevation(t *testing.T) {
	b := da.NewGraphBuilder()
	u := b.AddVertex(-6.2, 106.8, 10)
	v := b.AddVertexWithoutElevation(-6.201, 106.8)
	b.AddBidirectedEdge(u, v, 100)
	g, err := b.Build()
	require.NoError(t, err)
	cm := NewCostModel(g)

	d, err := cm.Cost(u, v, pkg.DISTANCE)
	require.NoError(t, err)
	assert.Equal(t, 100.0, d)

	for _, mode := range []pkg.CostMode{pkg.ELEVATION_DELTA, pkg.GAIN_ONLY, pkg.DROP_ONLY, pkg.ABSOLUTE_DELTA} {
		_, err := cm.Cost(u, v, mode)
		assert.True(t, errors.Is(err, ErrMissingElevation), mode.String())
	}
}

func TestCostUnknownVertex(t *testing.T) {
	cm := NewCostModel(toyGraph(t))

	_, err := cm.Cost(0, 42, pkg.GAIN_ONLY)
	assert.True(t, errors.Is(err, ErrVertexNotFound))
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

func TestParallelEdgesUseSmallestLength(t *testing.T) {
	b := da.NewGraphBuilder()
	u := b.AddVertex(-6.2, 106.8, 0)
	v := b.AddVertex(-6.201, 106.8, 2)
	b.AddEdge(u, v, 7)
	b.AddEdge(u, v, 4)
	b.AddEdge(u, v, 9)
	g, err := b.Build()
	require.NoError(t, err)

	got, err := NewCostModel(g).Cost(u, v, pkg.DISTANCE)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)
}
