package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/cambsdata/crimescope/internal/model"
)

func sampleLocations() []model.DangerousLocation {
	return []model.DangerousLocation{
		{Latitude: 52.2053, Longitude: 0.1218, TotalCrimes: 41, AreaName: "Cambridge 007B", TopCrimeType: "Shoplifting"},
		{Latitude: 52.1951, Longitude: 0.1313, TotalCrimes: 28, AreaName: "Cambridge 009C", TopCrimeType: "Burglary"},
	}
}

func TestWriteDangerousCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dangerous_locations.csv")
	require.NoError(t, WriteDangerousCSV(path, sampleLocations()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, dangerousHeader, rows[0])
	assert.Equal(t, []string{"52.2053", "0.1218", "41", "Cambridge 007B", "Shoplifting"}, rows[1])
	assert.Equal(t, "Burglary", rows[2][4])
}

func TestWriteDangerousCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dangerous_locations.csv")
	require.NoError(t, WriteDangerousCSV(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestWriteDangerousXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dangerous_locations.xlsx")
	require.NoError(t, WriteDangerousXLSX(path, sampleLocations()))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Dangerous Locations", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Latitude", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Cambridge 007B", sheet.Rows[1].Cells[3].String())

	crimes, err := sheet.Rows[1].Cells[2].Int()
	require.NoError(t, err)
	assert.Equal(t, 41, crimes)
}
