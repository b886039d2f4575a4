package datastructure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphBuild(t *testing.T) {
	b := NewGraphBuilder()
	v0 := b.AddVertex(-7.77, 110.37, 100)
	v1 := b.AddVertex(-7.78, 110.38, 110)
	v2 := b.AddVertexWithoutElevation(-7.76, 110.36)
	b.SetOsmId(v2, 42)
	b.AddBidirectedEdge(v0, v1, 10)
	b.AddEdge(v2, v0, 3)
	b.AddEdge(v0, v2, 7)

	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())
	assert.Equal(t, 0, g.NumberOfParallelEdges())
	assert.Equal(t, Index(2), g.GetOutDegree(v0))
	assert.True(t, g.HasVertex(v2))
	assert.False(t, g.HasVertex(3))

	heads := make([]Index, 0)
	g.ForOutEdgesOf(v0, func(e *OutEdge) {
		heads = append(heads, e.GetHead())
	})
	assert.Equal(t, []Index{v1, v2}, heads)

	d, ok := g.GetEdgeLength(v2, v0)
	require.True(t, ok)
	assert.Equal(t, 3.0, d)
	_, ok = g.GetEdgeLength(v1, v2)
	assert.False(t, ok)
	_, ok = g.GetEdgeLength(v0, 99)
	assert.False(t, ok)

	_, ok = g.GetElevation(v2)
	assert.False(t, ok)
	ele, ok := g.GetElevation(v1)
	require.True(t, ok)
	assert.Equal(t, 110.0, ele)
	assert.Equal(t, int64(42), g.GetVertex(v2).GetOsmId())

	bb := g.GetBoundingBox()
	assert.Equal(t, -7.78, bb.GetMinLat())
	assert.Equal(t, 110.36, bb.GetMinLon())
	assert.Equal(t, -7.76, bb.GetMaxLat())
	assert.Equal(t, 110.38, bb.GetMaxLon())
	assert.True(t, bb.Contains(-7.77, 110.37))
	assert.False(t, bb.Contains(-7.70, 110.37))
}

func TestGraphBuildFoldsParallelEdges(t *testing.T) {
	b := NewGraphBuilder()
	u := b.AddVertex(0, 0, 0)
	v := b.AddVertex(0, 0.001, 0)
	b.AddEdge(u, v, 9)
	b.AddEdge(u, v, 4)
	b.AddEdge(u, v, 4)
	b.AddEdge(u, v, 6)

	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 1, g.NumberOfEdges())
	assert.Equal(t, 3, g.NumberOfParallelEdges())
	d, ok := g.GetEdgeLength(u, v)
	require.True(t, ok)
	assert.Equal(t, 4.0, d)
}

func TestGraphBuildErrors(t *testing.T) {
	b := NewGraphBuilder()
	u := b.AddVertex(0, 0, 0)
	b.AddEdge(u, 5, 1)
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrEdgeEndpointNotFound)

	b = NewGraphBuilder()
	u = b.AddVertex(0, 0, 0)
	v := b.AddVertex(0, 1, 0)
	b.AddEdge(u, v, -1)
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrNegativeEdgeLength)

	b = NewGraphBuilder()
	u = b.AddVertex(0, 0, 0)
	v = b.AddVertex(0, 1, 0)
	b.AddEdge(u, v, math.NaN())
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrNegativeEdgeLength)
}

func TestGraphBuildEmpty(t *testing.T) {
	g, err := NewGraphBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumberOfVertices())
	assert.Equal(t, 0, g.NumberOfEdges())
	assert.NotNil(t, g.GetBoundingBox())
}

func TestGraphBuilderSetElevation(t *testing.T) {
	b := NewGraphBuilderWithSize(1, 0)
	v := b.AddVertexWithoutElevation(1, 2)
	b.SetElevation(v, 55)
	assert.Equal(t, 1, b.NumberOfVertices())

	g, err := b.Build()
	require.NoError(t, err)
	ele, ok := g.GetElevation(v)
	require.True(t, ok)
	assert.Equal(t, 55.0, ele)
	assert.Equal(t, 1.0, g.GetVertexCoordinate(v).Lat)
}
