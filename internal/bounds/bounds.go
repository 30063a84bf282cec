// Package bounds defines the plausible bounding box of the study region,
// from static configuration or derived from a boundary shapefile.
package bounds

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cambsdata/crimescope/internal/config"
)

// Box is a latitude/longitude bounding box. A coordinate on the edge is
// inside the box.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the coordinate falls within the box.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// FromConfig resolves the study-region box. When a boundary shapefile is
// configured its extent wins; otherwise the static box is used.
func FromConfig(cfg config.BoundsConfig) (Box, error) {
	if cfg.Shapefile != "" {
		box, err := FromShapefile(cfg.Shapefile)
		if err != nil {
			return Box{}, err
		}
		zap.L().Info("bounds: derived from shapefile",
			zap.String("path", cfg.Shapefile),
			zap.Float64("min_lat", box.MinLat),
			zap.Float64("max_lat", box.MaxLat),
			zap.Float64("min_lon", box.MinLon),
			zap.Float64("max_lon", box.MaxLon),
		)
		return box, nil
	}
	return Box{
		MinLat: cfg.MinLat,
		MaxLat: cfg.MaxLat,
		MinLon: cfg.MinLon,
		MaxLon: cfg.MaxLon,
	}, nil
}

// FromShapefile computes the union extent of all shapes in a boundary
// shapefile. Shapefile X is longitude and Y is latitude.
func FromShapefile(path string) (Box, error) {
	r, err := shp.Open(path)
	if err != nil {
		return Box{}, eris.Wrapf(err, "bounds: open shapefile %s", path)
	}
	defer r.Close()

	var box Box
	first := true
	for r.Next() {
		_, shape := r.Shape()
		bb := shape.BBox()
		if first {
			box = Box{MinLat: bb.MinY, MaxLat: bb.MaxY, MinLon: bb.MinX, MaxLon: bb.MaxX}
			first = false
			continue
		}
		if bb.MinY < box.MinLat {
			box.MinLat = bb.MinY
		}
		if bb.MaxY > box.MaxLat {
			box.MaxLat = bb.MaxY
		}
		if bb.MinX < box.MinLon {
			box.MinLon = bb.MinX
		}
		if bb.MaxX > box.MaxLon {
			box.MaxLon = bb.MaxX
		}
	}
	if err := r.Err(); err != nil {
		return Box{}, eris.Wrapf(err, "bounds: read shapefile %s", path)
	}
	if first {
		return Box{}, eris.Errorf("bounds: shapefile %s contains no shapes", path)
	}
	return box, nil
}
