package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_defaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	}

	cfg := DefaultConfig()
	assert.Equal(t, "orto1.tif", cfg.Inputs.First)
	assert.Equal(t, "orto2.tif", cfg.Inputs.Second)
	assert.Equal(t, "intersection_obchaja_2.geojson", cfg.Output.Path)
	assert.Equal(t, "Intersection Area", cfg.Output.FeatureName)
	assert.Equal(t, 4, cfg.Output.Indent)
	assert.False(t, cfg.Processing.Parallel)
}

func TestLoadConfig_override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orthoverlap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
inputs:
  second: /data/b.tif
output:
  indent: 0
processing:
  parallel: true
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "orto1.tif", cfg.Inputs.First)
	assert.Equal(t, "/data/b.tif", cfg.Inputs.Second)
	assert.Equal(t, "intersection_obchaja_2.geojson", cfg.Output.Path)
	assert.Equal(t, 0, cfg.Output.Indent)
	assert.True(t, cfg.Processing.Parallel)
}

func TestLoadConfig_invalid(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"syntax.yaml": "inputs: [",
		"empty.yaml":  "output:\n  path: \"\"\n",
		"indent.yaml": "output:\n  indent: -1\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := LoadConfig(path)
		assert.Error(t, err, name)
	}
}

func TestSaveConfig_roundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Inputs.First = "left.tif"
	cfg.Output.FeatureName = "Overlap"
	cfg.Processing.Parallel = true

	path := filepath.Join(t.TempDir(), "nested", "orthoverlap.yaml")
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
