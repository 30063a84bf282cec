package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cambsdata/crimescope/internal/bounds"
	"github.com/cambsdata/crimescope/internal/model"
)

var cambridgeBox = bounds.Box{MinLat: 51.9, MaxLat: 52.5, MinLon: -0.3, MaxLon: 0.6}

func f64(v float64) *float64 { return &v }

func TestClean_ViewMembershipIsIndependent(t *testing.T) {
	records := []model.CrimeRecord{
		{CrimeType: "Burglary", AreaName: "A", Latitude: f64(52.2), Longitude: f64(0.12)},
		{CrimeType: "", AreaName: "B", Latitude: f64(52.2), Longitude: f64(0.12)},
		{CrimeType: "Theft", AreaName: "", Latitude: nil, Longitude: nil},
		{CrimeType: "", AreaName: "", Latitude: nil, Longitude: nil},
	}

	v := Clean(records, cambridgeBox)
	assert.Len(t, v.ForType, 2)
	assert.Len(t, v.ForGeo, 2)
	assert.Len(t, v.ForArea, 2)
}

func TestClean_OutOfBoundsExcludedFromGeoOnly(t *testing.T) {
	records := []model.CrimeRecord{
		{CrimeType: "Theft", AreaName: "A", Latitude: f64(0.0), Longitude: f64(0.0)},
	}

	v := Clean(records, cambridgeBox)
	assert.Empty(t, v.ForGeo)
	assert.Len(t, v.ForType, 1)
	assert.Len(t, v.ForArea, 1)
}

func TestClean_PreservesInputOrder(t *testing.T) {
	records := []model.CrimeRecord{
		{ID: "3", CrimeType: "c"},
		{ID: "1", CrimeType: "a"},
		{ID: "2", CrimeType: "b"},
	}

	v := Clean(records, cambridgeBox)
	require.Len(t, v.ForType, 3)
	assert.Equal(t, "3", v.ForType[0].ID)
	assert.Equal(t, "1", v.ForType[1].ID)
	assert.Equal(t, "2", v.ForType[2].ID)
}

func TestClean_EmptyInput(t *testing.T) {
	v := Clean(nil, cambridgeBox)
	assert.Empty(t, v.ForType)
	assert.Empty(t, v.ForGeo)
	assert.Empty(t, v.ForArea)
}

func TestGeoUsable_BoundaryInclusive(t *testing.T) {
	r := model.CrimeRecord{Latitude: f64(51.9), Longitude: f64(0.6)}
	assert.True(t, GeoUsable(r, cambridgeBox))
}
