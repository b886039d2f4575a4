package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatComparisons(t *testing.T) {
	assert.True(t, Eq(1.0, 1.0+EPS/2))
	assert.False(t, Eq(1.0, 1.0+2*EPS))

	assert.False(t, Lt(1.0, 1.0+EPS/2))
	assert.True(t, Lt(1.0, 1.1))

	assert.True(t, Le(1.0+EPS/2, 1.0))
	assert.True(t, Ge(1.0, 1.0+EPS/2))
	assert.True(t, Gt(2.0, 1.0))
	assert.False(t, Gt(1.0, 1.0))
}
