//go:build nooverlap

package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize_unavailable(t *testing.T) {
	assert.False(t, Available)
	assert.ErrorIs(t, Initialize(), ErrUnavailable)

	res := Overlap(square(0, 0, 1, 1), square(0, 0, 1, 1))
	assert.ErrorIs(t, res.Err, ErrEngineDown)
}
