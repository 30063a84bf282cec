package geospatial

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/cambsdata/crimescope/internal/model"
)

// Severity bands for marker styling, derived from a marker's rank within
// the selected set (top quartile, upper half, remainder).
const (
	SeverityHigh     = "high"
	SeverityElevated = "elevated"
	SeverityModerate = "moderate"
)

// HeatmapFeatures encodes raw density points as a GeoJSON FeatureCollection.
// Each feature carries its weight so the renderer can sum intensity.
func HeatmapFeatures(points []model.GeoPoint) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for _, p := range points {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}),
			Properties: map[string]interface{}{
				"weight": p.Weight,
			},
		})
	}
	return fc
}

// MarkerFeatures encodes deduplicated markers with a severity band per
// marker. Points must already be sorted by weight descending.
func MarkerFeatures(points []model.GeoPoint) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for i, p := range points {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}),
			Properties: map[string]interface{}{
				"crimes":   p.Weight,
				"severity": severityBand(i, len(points)),
			},
		})
	}
	return fc
}

// ClusterFeatures encodes per-area cluster statistics. Each feature sits at
// the area centroid and carries the total count, dominant crime type, and
// the top-five type breakdown for popups.
func ClusterFeatures(stats []model.AreaStat) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}
	for _, s := range stats {
		breakdown := make([]map[string]interface{}, 0, len(s.Breakdown))
		for _, e := range s.Breakdown {
			breakdown = append(breakdown, map[string]interface{}{
				"crime_type": e.Key,
				"count":      e.Count,
			})
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{s.CentroidLon, s.CentroidLat}),
			Properties: map[string]interface{}{
				"area_name":      s.AreaName,
				"total_count":    s.TotalCount,
				"top_crime_type": s.TopCrimeType,
				"breakdown":      breakdown,
			},
		})
	}
	return fc
}

// WriteGeoJSON marshals a FeatureCollection to path.
func WriteGeoJSON(path string, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "geospatial: marshal %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "geospatial: write %s", path)
	}
	return nil
}

// severityBand maps a rank within n markers to a styling band: the top
// quartile is high, the upper half elevated, the rest moderate.
func severityBand(rank, n int) string {
	if n == 0 {
		return SeverityModerate
	}
	switch {
	case rank < (n+3)/4:
		return SeverityHigh
	case rank < (n+1)/2:
		return SeverityElevated
	default:
		return SeverityModerate
	}
}
