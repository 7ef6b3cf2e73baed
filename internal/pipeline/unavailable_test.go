//go:build nooverlap

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orthoverlap/internal/report"
)

func TestExecute_engineCompiledOut(t *testing.T) {
	cfg := tempConfig(t)
	writeTIFF(t, cfg.Inputs.First, maskImage(4, 4, 255))
	writeTIFF(t, cfg.Inputs.Second, maskImage(3, 3, 255))

	rec := &report.Recorder{}
	res, err := NewDriver(cfg, rec).Execute()
	require.NoError(t, err)
	assert.Nil(t, res.Document)
	assert.NoFileExists(t, cfg.Output.Path)
	assert.Contains(t, res.Diagnostics, "overlap computation unavailable")
	assert.NotNil(t, res.Extents[0])
	assert.NotNil(t, res.Extents[1])
	assert.True(t, res.Overlap.Empty())
	assert.True(t, rec.Contains("no document written"))
	assert.False(t, rec.Contains("wrote "))
}
