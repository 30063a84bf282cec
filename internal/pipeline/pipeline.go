// Package pipeline orchestrates a full analysis run: ingestion, cleaning,
// aggregation, geospatial summarization, assembly, and artifact output.
package pipeline

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cambsdata/crimescope/internal/aggregate"
	"github.com/cambsdata/crimescope/internal/bounds"
	"github.com/cambsdata/crimescope/internal/clean"
	"github.com/cambsdata/crimescope/internal/config"
	"github.com/cambsdata/crimescope/internal/geospatial"
	"github.com/cambsdata/crimescope/internal/ingest"
	"github.com/cambsdata/crimescope/internal/model"
	"github.com/cambsdata/crimescope/internal/report"
	"github.com/cambsdata/crimescope/internal/store"
)

// Pipeline runs the analysis end to end. Every stage consumes the complete
// output of its predecessor; the independent aggregations run in parallel
// since each is a pure function of its input.
type Pipeline struct {
	cfg   *config.Config
	store store.Store
	box   bounds.Box
}

// New creates a Pipeline.
func New(cfg *config.Config, st store.Store, box bounds.Box) *Pipeline {
	return &Pipeline{cfg: cfg, store: st, box: box}
}

// outputs is the collected result of the parallel aggregation stage.
type outputs struct {
	typeCounts model.AggregationResult
	trend      model.MonthlyTrend
	areaCounts model.AggregationResult
	outcomes   model.AggregationResult
	density    []model.GeoPoint
	markers    []model.GeoPoint
	clusters   []model.AreaStat
}

// Run executes the pipeline on dataPath and records the outcome in the
// store. A missing required column or an empty dataset is a failure; a
// high reject rate downgrades success to partial.
func (p *Pipeline) Run(ctx context.Context, dataPath string) (*model.RunResult, error) {
	log := zap.L().With(zap.String("data_file", dataPath))
	log.Info("pipeline: starting analysis")

	run, err := p.store.CreateRun(ctx, dataPath)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: create run")
	}
	result := &model.RunResult{RunID: run.ID}

	fail := func(cause error) (*model.RunResult, error) {
		result.Status = model.RunStatusFailed
		result.Error = cause.Error()
		if storeErr := p.store.SetRunResult(ctx, run.ID, model.RunStatusFailed, nil, cause.Error()); storeErr != nil {
			log.Error("pipeline: record failure", zap.Error(storeErr))
		}
		return result, cause
	}

	// Ingest.
	records, rejects, err := ingest.IngestFile(dataPath)
	if err != nil {
		return fail(err)
	}
	for _, rej := range rejects {
		log.Debug("pipeline: row rejected",
			zap.Int("line", rej.Line),
			zap.String("reason", rej.Reason),
		)
	}

	// Clean.
	views := clean.Clean(records, p.box)

	// Aggregate and summarize in parallel; all inputs are immutable.
	out, err := p.aggregateAll(ctx, records, views)
	if err != nil {
		return fail(err)
	}

	// Assemble.
	summary, err := report.Assemble(report.Inputs{
		TypeCounts:     out.typeCounts,
		Trend:          out.trend,
		AreaCounts:     out.areaCounts,
		Outcomes:       out.outcomes,
		Markers:        out.markers,
		GeoRecords:     views.ForGeo,
		TotalProcessed: len(records),
		TotalRejected:  len(rejects),
		TypeUsable:     len(views.ForType),
		GeoUsable:      len(views.ForGeo),
		AreaUsable:     len(views.ForArea),
		Precision:      p.cfg.Analysis.CoordinatePrecision,
		TopLocations:   p.cfg.Analysis.TopLocations,
	})
	if err != nil {
		return fail(err)
	}

	if w := report.RejectRateWarning(len(records), len(rejects), p.cfg.Analysis.RejectWarnRatio); w != "" {
		summary.Warnings = append(summary.Warnings, w)
	}

	// Write artifacts.
	if err := p.writeArtifacts(summary, out); err != nil {
		return fail(err)
	}

	status := model.RunStatusSuccess
	if len(summary.Warnings) > 0 {
		status = model.RunStatusPartial
	}
	result.Status = status
	result.Summary = summary
	result.Warnings = summary.Warnings

	if err := p.store.SetRunResult(ctx, run.ID, status, summary, ""); err != nil {
		log.Error("pipeline: record result", zap.Error(err))
	}

	log.Info("pipeline: analysis complete",
		zap.String("status", string(status)),
		zap.Int("processed", summary.TotalProcessed),
		zap.Int("rejected", summary.TotalRejected),
		zap.Int("warnings", len(summary.Warnings)),
	)
	return result, nil
}

// aggregateAll fans the independent aggregations out over an errgroup.
// The trend uses all accepted records so its month axis covers every month
// observed anywhere in the cleaned dataset.
func (p *Pipeline) aggregateAll(ctx context.Context, records []model.CrimeRecord, views clean.Views) (*outputs, error) {
	var (
		out outputs
		mu  sync.Mutex
	)
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		r := aggregate.CrimeTypeCounts(views.ForType)
		mu.Lock()
		out.typeCounts = r
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		r := aggregate.MonthlyTrend(records, p.cfg.Analysis.TopTrendTypes)
		mu.Lock()
		out.trend = r
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		r := aggregate.AreaCounts(views.ForArea)
		mu.Lock()
		out.areaCounts = r
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		r := aggregate.OutcomeDistribution(records)
		mu.Lock()
		out.outcomes = r
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		density := geospatial.DensityPoints(views.ForGeo)
		markers := geospatial.MarkerPoints(views.ForGeo, p.cfg.Analysis.TopLocations, p.cfg.Analysis.CoordinatePrecision)
		clusters := geospatial.AreaClusters(views.ForGeo)
		mu.Lock()
		out.density = density
		out.markers = markers
		out.clusters = clusters
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: aggregate")
	}
	return &out, nil
}

// writeArtifacts lays out output/{charts,maps,data,reports} and writes
// every artifact of the run.
func (p *Pipeline) writeArtifacts(summary *model.Summary, out *outputs) error {
	dirs, err := OutputDirs(p.cfg.Output.Dir)
	if err != nil {
		return err
	}

	charts := []struct {
		name string
		ds   report.ChartDataset
	}{
		{"chart1_crime_types.json", report.CrimeTypeChart(out.typeCounts, p.cfg.Analysis.TopCrimeTypes)},
		{"chart2_monthly_trends.json", report.MonthlyTrendChart(out.trend)},
		{"chart3_areas.json", report.AreaChart(out.areaCounts, p.cfg.Analysis.TopAreas)},
		{"chart4_outcomes.json", report.OutcomeChart(out.outcomes)},
	}
	for _, c := range charts {
		if err := report.WriteChart(filepath.Join(dirs.Charts, c.name), c.ds); err != nil {
			return err
		}
	}

	if err := geospatial.WriteGeoJSON(filepath.Join(dirs.Maps, "map1_crime_heatmap.geojson"), geospatial.HeatmapFeatures(out.density)); err != nil {
		return err
	}
	if err := geospatial.WriteGeoJSON(filepath.Join(dirs.Maps, "map2_crime_markers.geojson"), geospatial.MarkerFeatures(out.markers)); err != nil {
		return err
	}
	if err := geospatial.WriteGeoJSON(filepath.Join(dirs.Maps, "map3_crime_clusters.geojson"), geospatial.ClusterFeatures(out.clusters)); err != nil {
		return err
	}

	if err := report.WriteDangerousCSV(filepath.Join(dirs.Data, "top_dangerous_locations.csv"), summary.DangerousLocations); err != nil {
		return err
	}
	if err := report.WriteDangerousXLSX(filepath.Join(dirs.Data, "top_dangerous_locations.xlsx"), summary.DangerousLocations); err != nil {
		return err
	}

	return report.WriteSummaryText(filepath.Join(dirs.Reports, "summary_statistics.txt"), summary)
}
