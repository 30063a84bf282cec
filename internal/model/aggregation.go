package model

import (
	"sort"
	"time"
)

// CountEntry is one (key, count) pair in a ranking.
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// AggregationResult maps group keys to counts and carries the derived
// ranking: descending by count, ties broken by lexicographic key order.
type AggregationResult struct {
	Counts  map[string]int `json:"counts"`
	Ranking []CountEntry   `json:"ranking"`
}

// NewAggregationResult builds a result from a count map, deriving the
// deterministic ranking.
func NewAggregationResult(counts map[string]int) AggregationResult {
	ranking := make([]CountEntry, 0, len(counts))
	for k, c := range counts {
		ranking = append(ranking, CountEntry{Key: k, Count: c})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Key < ranking[j].Key
	})
	return AggregationResult{Counts: counts, Ranking: ranking}
}

// Total sums all counts.
func (a AggregationResult) Total() int {
	total := 0
	for _, c := range a.Counts {
		total += c
	}
	return total
}

// Top returns the first n ranking entries, or all of them when n exceeds
// the number of distinct groups.
func (a AggregationResult) Top(n int) []CountEntry {
	if n < 0 {
		n = 0
	}
	if n > len(a.Ranking) {
		n = len(a.Ranking)
	}
	return a.Ranking[:n]
}

// MonthCount is one point of a monthly series.
type MonthCount struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// MonthlyTrend holds per-type monthly series over the full observed month
// range. Types preserves the top-N ranking order; every series has exactly
// one entry per month in Months, zero-filled.
type MonthlyTrend struct {
	Types  []string                `json:"types"`
	Months []time.Time             `json:"months"`
	Series map[string][]MonthCount `json:"series"`
}

// GeoPoint is a (latitude, longitude, weight) triple for map rendering.
// Weight is 1 for raw density points and an aggregated incident count for
// deduplicated markers.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Weight    int     `json:"weight"`
}

// AreaStat summarizes one administrative area for the cluster map.
type AreaStat struct {
	AreaName     string       `json:"area_name"`
	CentroidLat  float64      `json:"centroid_lat"`
	CentroidLon  float64      `json:"centroid_lon"`
	TotalCount   int          `json:"total_count"`
	TopCrimeType string       `json:"top_crime_type"`
	Breakdown    []CountEntry `json:"breakdown,omitempty"`
}
