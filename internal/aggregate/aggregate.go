// Package aggregate computes grouped statistics over cleaned records.
// Every function is a pure function of its input slice and never mutates
// it, so callers may invoke them in parallel without locking.
package aggregate

import (
	"time"

	"github.com/cambsdata/crimescope/internal/model"
)

// OutcomeNotSpecified is the explicit bucket for records with an empty
// outcome, so they are counted rather than silently excluded.
const OutcomeNotSpecified = "Not specified"

// CrimeTypeCounts groups records by crime type.
func CrimeTypeCounts(records []model.CrimeRecord) model.AggregationResult {
	counts := make(map[string]int)
	for _, r := range records {
		if r.CrimeType == "" {
			continue
		}
		counts[r.CrimeType]++
	}
	return model.NewAggregationResult(counts)
}

// AreaCounts groups records by area name. The ranking covers every area so
// the summary's safest-area figure reads the true minimum; consumers that
// only want the worst areas truncate with Top.
func AreaCounts(records []model.CrimeRecord) model.AggregationResult {
	counts := make(map[string]int)
	for _, r := range records {
		if r.AreaName == "" {
			continue
		}
		counts[r.AreaName]++
	}
	return model.NewAggregationResult(counts)
}

// OutcomeDistribution groups records by outcome, mapping empty outcomes to
// the OutcomeNotSpecified bucket.
func OutcomeDistribution(records []model.CrimeRecord) model.AggregationResult {
	counts := make(map[string]int)
	for _, r := range records {
		outcome := r.Outcome
		if outcome == "" {
			outcome = OutcomeNotSpecified
		}
		counts[outcome]++
	}
	return model.NewAggregationResult(counts)
}

// MonthlyTrend selects the top n crime types by overall count and computes
// a per-month series for each across the full month range observed in
// records. Months with no incidents of a type appear with count zero.
func MonthlyTrend(records []model.CrimeRecord, topN int) model.MonthlyTrend {
	overall := CrimeTypeCounts(records)
	top := overall.Top(topN)

	var first, last time.Time
	for _, r := range records {
		if first.IsZero() || r.Month.Before(first) {
			first = r.Month
		}
		if last.IsZero() || r.Month.After(last) {
			last = r.Month
		}
	}
	months := model.MonthRange(first, last)

	// counts[type][month] over the selected types only.
	selected := make(map[string]bool, len(top))
	types := make([]string, 0, len(top))
	for _, e := range top {
		selected[e.Key] = true
		types = append(types, e.Key)
	}
	counts := make(map[string]map[time.Time]int, len(top))
	for _, r := range records {
		if !selected[r.CrimeType] {
			continue
		}
		byMonth, ok := counts[r.CrimeType]
		if !ok {
			byMonth = make(map[time.Time]int)
			counts[r.CrimeType] = byMonth
		}
		byMonth[r.Month]++
	}

	series := make(map[string][]model.MonthCount, len(types))
	for _, typ := range types {
		points := make([]model.MonthCount, 0, len(months))
		for _, m := range months {
			points = append(points, model.MonthCount{Month: m, Count: counts[typ][m]})
		}
		series[typ] = points
	}

	return model.MonthlyTrend{Types: types, Months: months, Series: series}
}
