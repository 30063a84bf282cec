package model

import "time"

// DangerousLocation is one row of the dangerous-locations table: a rounded
// coordinate with its aggregated incident count and the dominant area and
// crime type at that coordinate.
type DangerousLocation struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TotalCrimes  int     `json:"total_crimes"`
	AreaName     string  `json:"area_name"`
	TopCrimeType string  `json:"top_crime_type"`
}

// Summary is the merged output of a pipeline run. It always accounts for
// every record: accepted, rejected, and excluded per dimension, so silent
// data loss is not possible.
type Summary struct {
	TotalProcessed int `json:"total_processed"`
	TotalRejected  int `json:"total_rejected"`

	TypeUsable int `json:"type_usable"`
	GeoUsable  int `json:"geo_usable"`
	AreaUsable int `json:"area_usable"`

	DateStart time.Time `json:"date_start"`
	DateEnd   time.Time `json:"date_end"`

	MostCommonCrime      string `json:"most_common_crime"`
	MostCommonCrimeCount int    `json:"most_common_crime_count"`
	MostAffectedArea     string `json:"most_affected_area"`
	MostAffectedAreaN    int    `json:"most_affected_area_count"`
	SafestArea           string `json:"safest_area,omitempty"`
	SafestAreaN          int    `json:"safest_area_count,omitempty"`
	MostCommonOutcome    string `json:"most_common_outcome,omitempty"`
	MostCommonOutcomeN   int    `json:"most_common_outcome_count,omitempty"`

	DangerousLocations []DangerousLocation `json:"dangerous_locations,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// ExcludedFromType returns how many accepted records were unusable for
// crime-type aggregation.
func (s *Summary) ExcludedFromType() int { return s.TotalProcessed - s.TypeUsable }

// ExcludedFromGeo returns how many accepted records were unusable for
// geospatial output.
func (s *Summary) ExcludedFromGeo() int { return s.TotalProcessed - s.GeoUsable }

// ExcludedFromArea returns how many accepted records were unusable for
// area aggregation.
func (s *Summary) ExcludedFromArea() int { return s.TotalProcessed - s.AreaUsable }
