// Package clean filters ingested records into per-dimension usability views.
package clean

import (
	"go.uber.org/zap"

	"github.com/cambsdata/crimescope/internal/bounds"
	"github.com/cambsdata/crimescope/internal/model"
)

// Views bundles the three filtered views of the dataset. A record may
// appear in zero, one, two, or all three views; filtering preserves input
// order. Exclusion from one view never cascades to another.
type Views struct {
	ForType []model.CrimeRecord
	ForGeo  []model.CrimeRecord
	ForArea []model.CrimeRecord
}

// Clean partitions records by the usability predicates: non-empty crime
// type, coordinates inside the study box, non-empty area name.
func Clean(records []model.CrimeRecord, box bounds.Box) Views {
	var v Views
	for _, r := range records {
		if r.CrimeType != "" {
			v.ForType = append(v.ForType, r)
		}
		if GeoUsable(r, box) {
			v.ForGeo = append(v.ForGeo, r)
		}
		if r.AreaName != "" {
			v.ForArea = append(v.ForArea, r)
		}
	}
	zap.L().Info("clean: views built",
		zap.Int("input", len(records)),
		zap.Int("for_type", len(v.ForType)),
		zap.Int("for_geo", len(v.ForGeo)),
		zap.Int("for_area", len(v.ForArea)),
	)
	return v
}

// GeoUsable reports whether a record can contribute to geospatial output:
// both coordinates present, finite, and inside the study bounding box.
func GeoUsable(r model.CrimeRecord, box bounds.Box) bool {
	return r.HasCoordinates() && box.Contains(*r.Latitude, *r.Longitude)
}
