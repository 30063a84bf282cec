package bounds

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cambsdata/crimescope/internal/config"
)

func TestBoxContains(t *testing.T) {
	box := Box{MinLat: 51.9, MaxLat: 52.5, MinLon: -0.3, MaxLon: 0.6}

	assert.True(t, box.Contains(52.2, 0.12))
	assert.True(t, box.Contains(51.9, -0.3), "edges are inside")
	assert.True(t, box.Contains(52.5, 0.6))
	assert.False(t, box.Contains(53.0, 0.12))
	assert.False(t, box.Contains(52.2, 0.7))
}

func TestFromConfig_StaticBox(t *testing.T) {
	box, err := FromConfig(config.BoundsConfig{MinLat: 51.9, MaxLat: 52.5, MinLon: -0.3, MaxLon: 0.6})
	require.NoError(t, err)
	assert.Equal(t, Box{MinLat: 51.9, MaxLat: 52.5, MinLon: -0.3, MaxLon: 0.6}, box)
}

func TestFromConfig_MissingShapefile(t *testing.T) {
	_, err := FromConfig(config.BoundsConfig{Shapefile: filepath.Join(t.TempDir(), "nope.shp")})
	require.Error(t, err)
}

func writeShapefile(t *testing.T, points [][2]float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boundary.shp")

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	for _, p := range points {
		w.Write(&shp.Point{X: p[0], Y: p[1]})
	}
	w.Close()
	return path
}

func TestFromShapefile_UnionExtent(t *testing.T) {
	// X is longitude, Y is latitude.
	path := writeShapefile(t, [][2]float64{
		{0.1, 52.2},
		{0.4, 52.0},
		{-0.1, 52.4},
	})

	box, err := FromShapefile(path)
	require.NoError(t, err)
	assert.InDelta(t, 52.0, box.MinLat, 1e-9)
	assert.InDelta(t, 52.4, box.MaxLat, 1e-9)
	assert.InDelta(t, -0.1, box.MinLon, 1e-9)
	assert.InDelta(t, 0.4, box.MaxLon, 1e-9)
}

func TestFromShapefile_Empty(t *testing.T) {
	path := writeShapefile(t, nil)

	_, err := FromShapefile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no shapes")
}
