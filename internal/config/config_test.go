package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "data/raw", cfg.Data.Folder)
	assert.Equal(t, "merged_file.csv", cfg.Data.File)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, 10, cfg.Analysis.TopCrimeTypes)
	assert.Equal(t, 5, cfg.Analysis.TopTrendTypes)
	assert.Equal(t, 15, cfg.Analysis.TopAreas)
	assert.Equal(t, 20, cfg.Analysis.TopLocations)
	assert.Equal(t, 5, cfg.Analysis.CoordinatePrecision)
	assert.InDelta(t, 0.05, cfg.Analysis.RejectWarnRatio, 1e-9)
	assert.InDelta(t, 51.9, cfg.Bounds.MinLat, 1e-9)
	assert.Equal(t, "cambridgeshire", cfg.Fetch.Force)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDefaultYAML_RoundTrips(t *testing.T) {
	out, err := DefaultYAML()
	require.NoError(t, err)

	var cfg Config
	require.NoError(t, yaml.Unmarshal(out, &cfg))

	want, err := Default()
	require.NoError(t, err)
	assert.Equal(t, *want, cfg)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "shouty", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}
