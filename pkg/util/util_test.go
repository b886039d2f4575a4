package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("sentinel")

func TestWrapErrorf(t *testing.T) {
	err := WrapErrorf(errSentinel, ErrNotFound, "vertex %d", 7)

	assert.Equal(t, "vertex 7: sentinel", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, errSentinel))
	assert.False(t, errors.Is(err, ErrBadParamInput))
	assert.Equal(t, ErrNotFound, ErrorCode(err))

	wrapped := fmt.Errorf("query: %w", err)
	assert.Equal(t, ErrNotFound, ErrorCode(wrapped))

	var e *Error
	assert.True(t, errors.As(wrapped, &e))
	assert.Equal(t, ErrNotFound, e.Code())
}

func TestWrapErrorfWithoutOrig(t *testing.T) {
	err := WrapErrorf(nil, ErrBadParamInput, "bad overhead")
	assert.Equal(t, "bad overhead", err.Error())
	assert.True(t, errors.Is(err, ErrBadParamInput))
	assert.Nil(t, errors.Unwrap(err))
}

func TestErrorCodeDefault(t *testing.T) {
	assert.Equal(t, ErrInternalServerError, ErrorCode(errSentinel))
}

func TestStringToFloat64(t *testing.T) {
	v, err := StringToFloat64(" 12.5\t")
	assert.NoError(t, err)
	assert.Equal(t, 12.5, v)

	_, err = StringToFloat64("twelve")
	assert.Error(t, err)
}
