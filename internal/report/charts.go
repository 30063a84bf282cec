package report

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/cambsdata/crimescope/internal/model"
)

// ChartKind identifies a renderer-agnostic chart dataset.
type ChartKind string

const (
	ChartCrimeTypeBar     ChartKind = "crime_type_bar"
	ChartMonthlyTrendLine ChartKind = "monthly_trend_lines"
	ChartAreaBar          ChartKind = "area_bar"
	ChartOutcomePie       ChartKind = "outcome_pie"
)

// ChartDataset is a fully specified chart input: the renderer needs no
// defaults beyond what is carried here.
type ChartDataset struct {
	Kind   ChartKind          `json:"kind"`
	Title  string             `json:"title"`
	Bars   []model.CountEntry `json:"bars,omitempty"`
	Slices []model.CountEntry `json:"slices,omitempty"`
	Trend  *TrendDataset      `json:"trend,omitempty"`
}

// TrendDataset is the line-chart form of a monthly trend: one series per
// crime type, aligned on the shared month axis.
type TrendDataset struct {
	Months []string      `json:"months"`
	Series []TrendSeries `json:"series"`
}

// TrendSeries is one line of the trend chart.
type TrendSeries struct {
	CrimeType string `json:"crime_type"`
	Counts    []int  `json:"counts"`
}

// CrimeTypeChart builds the top-N crime types bar dataset.
func CrimeTypeChart(counts model.AggregationResult, topN int) ChartDataset {
	return ChartDataset{
		Kind:  ChartCrimeTypeBar,
		Title: "Top Crime Types (12 Months)",
		Bars:  counts.Top(topN),
	}
}

// MonthlyTrendChart builds the trend line dataset from a monthly trend.
func MonthlyTrendChart(trend model.MonthlyTrend) ChartDataset {
	months := make([]string, 0, len(trend.Months))
	for _, m := range trend.Months {
		months = append(months, model.FormatMonth(m))
	}
	series := make([]TrendSeries, 0, len(trend.Types))
	for _, typ := range trend.Types {
		counts := make([]int, 0, len(trend.Series[typ]))
		for _, mc := range trend.Series[typ] {
			counts = append(counts, mc.Count)
		}
		series = append(series, TrendSeries{CrimeType: typ, Counts: counts})
	}
	return ChartDataset{
		Kind:  ChartMonthlyTrendLine,
		Title: "Monthly Crime Trends",
		Trend: &TrendDataset{Months: months, Series: series},
	}
}

// AreaChart builds the top-N high-crime areas bar dataset.
func AreaChart(counts model.AggregationResult, topN int) ChartDataset {
	return ChartDataset{
		Kind:  ChartAreaBar,
		Title: "High-Crime Areas",
		Bars:  counts.Top(topN),
	}
}

// OutcomeChart builds the outcome distribution pie dataset.
func OutcomeChart(counts model.AggregationResult) ChartDataset {
	return ChartDataset{
		Kind:   ChartOutcomePie,
		Title:  "Distribution of Crime Outcomes",
		Slices: counts.Ranking,
	}
}

// WriteChart marshals a chart dataset to path.
func WriteChart(path string, ds ChartDataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "report: marshal chart %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "report: write chart %s", path)
	}
	return nil
}
