// Package model defines the core data types shared across the analysis pipeline.
package model

import (
	"math"
	"time"
)

// CrimeRecord is a single incident after ingestion. Latitude and Longitude
// are nil when the source row carried no parseable coordinate; zero is a
// valid coordinate and must never be used as a missing marker.
type CrimeRecord struct {
	ID        string    `json:"id,omitempty"`
	Month     time.Time `json:"month"`
	CrimeType string    `json:"crime_type"`
	Location  string    `json:"location,omitempty"`
	AreaName  string    `json:"area_name,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
}

// HasCoordinates reports whether both coordinates are present and finite.
func (r CrimeRecord) HasCoordinates() bool {
	if r.Latitude == nil || r.Longitude == nil {
		return false
	}
	if math.IsNaN(*r.Latitude) || math.IsInf(*r.Latitude, 0) {
		return false
	}
	if math.IsNaN(*r.Longitude) || math.IsInf(*r.Longitude, 0) {
		return false
	}
	return true
}

// monthLayouts are the accepted date formats, most specific first. Source
// data asserts year-month granularity only, so full dates are truncated.
var monthLayouts = []string{"2006-01-02", "2006-01"}

// ParseMonth parses a source date string down to month precision.
// The returned time is the first day of the month in UTC.
func ParseMonth(s string) (time.Time, bool) {
	for _, layout := range monthLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// FormatMonth renders a month in the source "2006-01" form.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01")
}

// MonthRange returns every month from first to last inclusive, ascending.
// A reversed or zero range yields nil.
func MonthRange(first, last time.Time) []time.Time {
	if first.IsZero() || last.Before(first) {
		return nil
	}
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}
