package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cambsdata/crimescope/internal/model"
)

func TestCrimeTypeChart_TruncatesToTopN(t *testing.T) {
	counts := model.NewAggregationResult(map[string]int{"a": 1, "b": 3, "c": 2})

	ds := CrimeTypeChart(counts, 2)
	assert.Equal(t, ChartCrimeTypeBar, ds.Kind)
	require.Len(t, ds.Bars, 2)
	assert.Equal(t, "b", ds.Bars[0].Key)
	assert.Equal(t, "c", ds.Bars[1].Key)
}

func TestMonthlyTrendChart(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	trend := model.MonthlyTrend{
		Types:  []string{"Burglary"},
		Months: []time.Time{jan, feb},
		Series: map[string][]model.MonthCount{
			"Burglary": {{Month: jan, Count: 2}, {Month: feb, Count: 0}},
		},
	}

	ds := MonthlyTrendChart(trend)
	assert.Equal(t, ChartMonthlyTrendLine, ds.Kind)
	require.NotNil(t, ds.Trend)
	assert.Equal(t, []string{"2024-01", "2024-02"}, ds.Trend.Months)
	require.Len(t, ds.Trend.Series, 1)
	assert.Equal(t, "Burglary", ds.Trend.Series[0].CrimeType)
	assert.Equal(t, []int{2, 0}, ds.Trend.Series[0].Counts)
}

func TestAreaAndOutcomeCharts(t *testing.T) {
	counts := model.NewAggregationResult(map[string]int{"A": 3, "B": 2, "C": 1})

	area := AreaChart(counts, 2)
	assert.Equal(t, ChartAreaBar, area.Kind)
	require.Len(t, area.Bars, 2, "chart truncates; the full ranking stays intact")
	assert.Equal(t, "A", area.Bars[0].Key)
	assert.Len(t, counts.Ranking, 3)

	pie := OutcomeChart(counts)
	assert.Equal(t, ChartOutcomePie, pie.Kind)
	assert.Equal(t, counts.Ranking, pie.Slices)
}

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart1_crime_types.json")
	ds := CrimeTypeChart(model.NewAggregationResult(map[string]int{"Theft": 4}), 10)

	require.NoError(t, WriteChart(path, ds))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded ChartDataset
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ds, decoded)
}
