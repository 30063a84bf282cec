// Package geospatial derives map-ready structures from geo-usable records:
// raw density points, deduplicated high-frequency markers, and per-area
// cluster statistics.
package geospatial

import (
	"math"
	"sort"
	"strconv"

	"github.com/cambsdata/crimescope/internal/model"
)

// DefaultPrecision is the coordinate rounding precision (decimal places)
// used to merge near-duplicate geocodes when deduplicating markers.
const DefaultPrecision = 5

// DensityPoints returns one weight-1 point per geo-usable record. Raw
// multiplicity is preserved: density rendering derives intensity from
// point count, not pre-aggregated weights.
func DensityPoints(records []model.CrimeRecord) []model.GeoPoint {
	points := make([]model.GeoPoint, 0, len(records))
	for _, r := range records {
		if !r.HasCoordinates() {
			continue
		}
		points = append(points, model.GeoPoint{
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
			Weight:    1,
		})
	}
	return points
}

// MarkerPoints groups geo-usable records by coordinate rounded to the given
// precision, sums incident weight per unique coordinate, and returns the
// top n by weight. Ties are broken lexicographically on the formatted
// (latitude, longitude) pair so output order is reproducible.
func MarkerPoints(records []model.CrimeRecord, topN, precision int) []model.GeoPoint {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	type key struct{ lat, lon float64 }
	weights := make(map[key]int)
	for _, r := range records {
		if !r.HasCoordinates() {
			continue
		}
		k := key{RoundCoordinate(*r.Latitude, precision), RoundCoordinate(*r.Longitude, precision)}
		weights[k]++
	}

	points := make([]model.GeoPoint, 0, len(weights))
	for k, w := range weights {
		points = append(points, model.GeoPoint{Latitude: k.lat, Longitude: k.lon, Weight: w})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Weight != points[j].Weight {
			return points[i].Weight > points[j].Weight
		}
		ki := coordKey(points[i].Latitude, points[i].Longitude, precision)
		kj := coordKey(points[j].Latitude, points[j].Longitude, precision)
		return ki < kj
	})

	if topN >= 0 && topN < len(points) {
		points = points[:topN]
	}
	return points
}

// AreaClusters groups records that are both geo-usable and area-usable by
// area name. The centroid is the arithmetic mean of member coordinates,
// TotalCount the member count, and TopCrimeType the mode of crime types
// within the group (ties to the lexicographically smallest name). The
// breakdown keeps the top five types per area for popup rendering.
func AreaClusters(records []model.CrimeRecord) []model.AreaStat {
	type group struct {
		sumLat, sumLon float64
		count          int
		types          map[string]int
	}
	groups := make(map[string]*group)
	for _, r := range records {
		if !r.HasCoordinates() || r.AreaName == "" {
			continue
		}
		g, ok := groups[r.AreaName]
		if !ok {
			g = &group{types: make(map[string]int)}
			groups[r.AreaName] = g
		}
		g.sumLat += *r.Latitude
		g.sumLon += *r.Longitude
		g.count++
		if r.CrimeType != "" {
			g.types[r.CrimeType]++
		}
	}

	stats := make([]model.AreaStat, 0, len(groups))
	for name, g := range groups {
		breakdown := model.NewAggregationResult(g.types)
		top := ""
		if len(breakdown.Ranking) > 0 {
			top = breakdown.Ranking[0].Key
		}
		stats = append(stats, model.AreaStat{
			AreaName:     name,
			CentroidLat:  g.sumLat / float64(g.count),
			CentroidLon:  g.sumLon / float64(g.count),
			TotalCount:   g.count,
			TopCrimeType: top,
			Breakdown:    breakdown.Top(5),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalCount != stats[j].TotalCount {
			return stats[i].TotalCount > stats[j].TotalCount
		}
		return stats[i].AreaName < stats[j].AreaName
	})
	return stats
}

// RoundCoordinate rounds a coordinate to the given number of decimal places.
func RoundCoordinate(v float64, precision int) float64 {
	scale := math.Pow10(precision)
	return math.Round(v*scale) / scale
}

func coordKey(lat, lon float64, precision int) string {
	return strconv.FormatFloat(lat, 'f', precision, 64) + "," +
		strconv.FormatFloat(lon, 'f', precision, 64)
}
