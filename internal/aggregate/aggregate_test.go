package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cambsdata/crimescope/internal/model"
)

func month(s string) time.Time {
	m, ok := model.ParseMonth(s)
	if !ok {
		panic("bad month in test: " + s)
	}
	return m
}

func rec(m, typ, area, outcome string) model.CrimeRecord {
	return model.CrimeRecord{Month: month(m), CrimeType: typ, AreaName: area, Outcome: outcome}
}

func TestCrimeTypeCounts(t *testing.T) {
	records := []model.CrimeRecord{
		rec("2024-01", "Burglary", "A", ""),
		rec("2024-01", "Burglary", "A", ""),
		rec("2024-02", "Theft", "B", ""),
	}

	r := CrimeTypeCounts(records)
	assert.Equal(t, map[string]int{"Burglary": 2, "Theft": 1}, r.Counts)
	require.Len(t, r.Ranking, 2)
	assert.Equal(t, "Burglary", r.Ranking[0].Key)
}

func TestCrimeTypeCounts_SumMatchesUsableRecords(t *testing.T) {
	records := []model.CrimeRecord{
		rec("2024-01", "Burglary", "", ""),
		rec("2024-01", "Theft", "", ""),
		rec("2024-01", "Theft", "", ""),
		rec("2024-01", "Drugs", "", ""),
	}
	assert.Equal(t, len(records), CrimeTypeCounts(records).Total())
}

func TestCrimeTypeCounts_EmptyInput(t *testing.T) {
	r := CrimeTypeCounts(nil)
	assert.Empty(t, r.Counts)
	assert.Empty(t, r.Ranking)
}

func TestAreaCounts(t *testing.T) {
	records := []model.CrimeRecord{
		rec("2024-01", "x", "A", ""),
		rec("2024-01", "x", "A", ""),
		rec("2024-01", "x", "B", ""),
		rec("2024-01", "x", "C", ""),
		rec("2024-01", "x", "C", ""),
		rec("2024-01", "x", "C", ""),
	}

	r := AreaCounts(records)
	require.Len(t, r.Ranking, 3)
	assert.Equal(t, model.CountEntry{Key: "C", Count: 3}, r.Ranking[0])
	assert.Equal(t, model.CountEntry{Key: "A", Count: 2}, r.Ranking[1])
	assert.Equal(t, model.CountEntry{Key: "B", Count: 1}, r.Ranking[2])
}

func TestAreaCounts_RanksEveryArea(t *testing.T) {
	// The ranking must not stop at any display limit: the summary reads
	// the true minimum off its tail.
	var records []model.CrimeRecord
	for i := 1; i <= 16; i++ {
		area := fmt.Sprintf("Area %02d", i)
		for j := 0; j < 17-i; j++ {
			records = append(records, rec("2024-01", "x", area, ""))
		}
	}

	r := AreaCounts(records)
	require.Len(t, r.Ranking, 16)
	assert.Equal(t, model.CountEntry{Key: "Area 01", Count: 16}, r.Ranking[0])
	assert.Equal(t, model.CountEntry{Key: "Area 16", Count: 1}, r.Ranking[15])
}

func TestOutcomeDistribution_EmptyOutcomeBucketed(t *testing.T) {
	records := []model.CrimeRecord{
		rec("2024-01", "x", "A", "Under investigation"),
		rec("2024-01", "x", "A", ""),
		rec("2024-01", "x", "A", ""),
	}

	r := OutcomeDistribution(records)
	assert.Equal(t, 2, r.Counts[OutcomeNotSpecified])
	assert.Equal(t, 1, r.Counts["Under investigation"])
	assert.Equal(t, len(records), r.Total(), "no silent exclusion")
}

func TestMonthlyTrend_ZeroFilledRange(t *testing.T) {
	records := []model.CrimeRecord{
		rec("2024-01", "Burglary", "A", ""),
		rec("2024-04", "Burglary", "A", ""),
		rec("2024-02", "Theft", "B", ""),
	}

	trend := MonthlyTrend(records, 2)
	require.Len(t, trend.Months, 4, "full observed range 2024-01..2024-04")

	burglary := trend.Series["Burglary"]
	require.Len(t, burglary, 4)
	assert.Equal(t, 1, burglary[0].Count)
	assert.Equal(t, 0, burglary[1].Count)
	assert.Equal(t, 0, burglary[2].Count)
	assert.Equal(t, 1, burglary[3].Count)

	theft := trend.Series["Theft"]
	require.Len(t, theft, 4)
	assert.Equal(t, 1, theft[1].Count)
}

func TestMonthlyTrend_TopNSelection(t *testing.T) {
	records := []model.CrimeRecord{
		rec("2024-01", "Burglary", "", ""),
		rec("2024-01", "Burglary", "", ""),
		rec("2024-01", "Theft", "", ""),
		rec("2024-01", "Theft", "", ""),
		rec("2024-01", "Drugs", "", ""),
	}

	trend := MonthlyTrend(records, 2)
	// Tie between Burglary and Theft both at 2: both selected; Drugs dropped.
	assert.Equal(t, []string{"Burglary", "Theft"}, trend.Types)
	assert.NotContains(t, trend.Series, "Drugs")
}

func TestMonthlyTrend_RangeCoversMonthsFromUntypedRecords(t *testing.T) {
	records := []model.CrimeRecord{
		rec("2024-01", "Burglary", "", ""),
		rec("2024-03", "", "", ""), // month observed only on a type-unusable record
	}

	trend := MonthlyTrend(records, 5)
	require.Len(t, trend.Months, 3)
	assert.Len(t, trend.Series["Burglary"], 3)
}

func TestMonthlyTrend_EmptyInput(t *testing.T) {
	trend := MonthlyTrend(nil, 5)
	assert.Empty(t, trend.Types)
	assert.Empty(t, trend.Months)
	assert.Empty(t, trend.Series)
}

func TestAggregations_DoNotMutateInput(t *testing.T) {
	records := []model.CrimeRecord{
		rec("2024-02", "Theft", "B", "x"),
		rec("2024-01", "Burglary", "A", "y"),
	}
	snapshot := make([]model.CrimeRecord, len(records))
	copy(snapshot, records)

	CrimeTypeCounts(records)
	AreaCounts(records)
	OutcomeDistribution(records)
	MonthlyTrend(records, 1)

	assert.Equal(t, snapshot, records)
}
