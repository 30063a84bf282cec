// Package report merges aggregation outputs into the run summary and
// writes the textual, tabular, and chart-dataset artifacts.
package report

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/cambsdata/crimescope/internal/geospatial"
	"github.com/cambsdata/crimescope/internal/model"
)

// ErrEmptyDataset is reported when zero records survive ingestion. It is
// surfaced as a pipeline failure rather than letting downstream stages emit
// misleading "no data" artifacts.
var ErrEmptyDataset = eris.New("report: empty dataset")

// Inputs carries everything the assembler needs from upstream stages.
type Inputs struct {
	TypeCounts model.AggregationResult
	Trend      model.MonthlyTrend
	AreaCounts model.AggregationResult
	Outcomes   model.AggregationResult
	Markers    []model.GeoPoint

	// GeoRecords are the geo-usable records, used to annotate dangerous
	// locations with their dominant area and crime type.
	GeoRecords []model.CrimeRecord

	TotalProcessed int
	TotalRejected  int
	TypeUsable     int
	GeoUsable      int
	AreaUsable     int

	Precision    int
	TopLocations int
}

// Assemble builds the final Summary. It fails with ErrEmptyDataset when no
// records survived ingestion.
func Assemble(in Inputs) (*model.Summary, error) {
	if in.TotalProcessed == 0 {
		return nil, ErrEmptyDataset
	}

	s := &model.Summary{
		TotalProcessed: in.TotalProcessed,
		TotalRejected:  in.TotalRejected,
		TypeUsable:     in.TypeUsable,
		GeoUsable:      in.GeoUsable,
		AreaUsable:     in.AreaUsable,
	}

	if len(in.Trend.Months) > 0 {
		s.DateStart = in.Trend.Months[0]
		s.DateEnd = in.Trend.Months[len(in.Trend.Months)-1]
	}

	if len(in.TypeCounts.Ranking) > 0 {
		s.MostCommonCrime = in.TypeCounts.Ranking[0].Key
		s.MostCommonCrimeCount = in.TypeCounts.Ranking[0].Count
	}
	if n := len(in.AreaCounts.Ranking); n > 0 {
		s.MostAffectedArea = in.AreaCounts.Ranking[0].Key
		s.MostAffectedAreaN = in.AreaCounts.Ranking[0].Count
		s.SafestArea = in.AreaCounts.Ranking[n-1].Key
		s.SafestAreaN = in.AreaCounts.Ranking[n-1].Count
	}
	if len(in.Outcomes.Ranking) > 0 {
		s.MostCommonOutcome = in.Outcomes.Ranking[0].Key
		s.MostCommonOutcomeN = in.Outcomes.Ranking[0].Count
	}

	s.DangerousLocations = dangerousLocations(in)

	if s.TypeUsable == 0 {
		s.Warnings = append(s.Warnings, "no records usable for crime-type aggregation")
	}
	if s.GeoUsable == 0 {
		s.Warnings = append(s.Warnings, "no records usable for geospatial output")
	}
	if s.AreaUsable == 0 {
		s.Warnings = append(s.Warnings, "no records usable for area aggregation")
	}

	return s, nil
}

// dangerousLocations takes the top markers (already ranked, tie-broken by
// coordinate) and annotates each with the dominant area and crime type of
// the records at that rounded coordinate.
func dangerousLocations(in Inputs) []model.DangerousLocation {
	markers := in.Markers
	if in.TopLocations > 0 && in.TopLocations < len(markers) {
		markers = markers[:in.TopLocations]
	}

	precision := in.Precision
	if precision <= 0 {
		precision = geospatial.DefaultPrecision
	}

	type modes struct {
		areas map[string]int
		types map[string]int
	}
	byCoord := make(map[[2]float64]*modes)
	for _, r := range in.GeoRecords {
		if !r.HasCoordinates() {
			continue
		}
		k := [2]float64{
			geospatial.RoundCoordinate(*r.Latitude, precision),
			geospatial.RoundCoordinate(*r.Longitude, precision),
		}
		m, ok := byCoord[k]
		if !ok {
			m = &modes{areas: make(map[string]int), types: make(map[string]int)}
			byCoord[k] = m
		}
		if r.AreaName != "" {
			m.areas[r.AreaName]++
		}
		if r.CrimeType != "" {
			m.types[r.CrimeType]++
		}
	}

	locations := make([]model.DangerousLocation, 0, len(markers))
	for _, p := range markers {
		loc := model.DangerousLocation{
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			TotalCrimes: p.Weight,
		}
		if m, ok := byCoord[[2]float64{p.Latitude, p.Longitude}]; ok {
			loc.AreaName = mode(m.areas)
			loc.TopCrimeType = mode(m.types)
		}
		locations = append(locations, loc)
	}
	return locations
}

// mode returns the most frequent key, ties to the lexicographically
// smallest. Empty input yields "Unknown", matching the source convention.
func mode(counts map[string]int) string {
	if len(counts) == 0 {
		return "Unknown"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys[0]
}

// RejectRateWarning formats the high-reject-rate warning when the reject
// ratio exceeds the configured threshold. Returns "" when within bounds.
func RejectRateWarning(processed, rejected int, warnRatio float64) string {
	total := processed + rejected
	if total == 0 || warnRatio <= 0 {
		return ""
	}
	ratio := float64(rejected) / float64(total)
	if ratio <= warnRatio {
		return ""
	}
	return fmt.Sprintf("high reject rate: %d of %d rows (%.1f%%) rejected", rejected, total, ratio*100)
}
