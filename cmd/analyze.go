package main

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cambsdata/crimescope/internal/bounds"
	"github.com/cambsdata/crimescope/internal/model"
	"github.com/cambsdata/crimescope/internal/pipeline"
	"github.com/cambsdata/crimescope/internal/report"
	"github.com/cambsdata/crimescope/internal/store"
)

var analyzeFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis pipeline on the merged data file",
	Long: `Reads the merged crime CSV, cleans and aggregates it, and writes all
artifacts under the output directory:

  charts/   renderer-agnostic chart datasets (JSON)
  maps/     heatmap, marker, and cluster GeoJSON
  data/     top dangerous locations (CSV and XLSX)
  reports/  textual summary statistics`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		dataPath := analyzeFile
		if dataPath == "" {
			dataPath = filepath.Join(cfg.Data.Folder, cfg.Data.File)
		}

		box, err := bounds.FromConfig(cfg.Bounds)
		if err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "analyze: open store")
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "analyze: migrate store")
		}

		result, err := pipeline.New(cfg, st, box).Run(ctx, dataPath)
		if err != nil {
			if eris.Is(err, report.ErrEmptyDataset) {
				return eris.Wrap(err, "analyze: no usable records")
			}
			return err
		}

		printResult(result)
		return nil
	},
}

func printResult(result *model.RunResult) {
	fmt.Println(report.FormatSummaryText(result.Summary))
	if result.Status == model.RunStatusPartial {
		zap.L().Warn("analyze: completed with warnings", zap.Strings("warnings", result.Warnings))
	}
	fmt.Printf("Run %s: %s\n", result.RunID, result.Status)
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "data file to analyze (default: configured data folder + file)")
	rootCmd.AddCommand(analyzeCmd)
}
