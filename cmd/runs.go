package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cambsdata/crimescope/internal/model"
	"github.com/cambsdata/crimescope/internal/store"
)

var (
	runsLimit  int
	runsStatus string
	runsJSON   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded analysis runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "runs: open store")
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "runs: migrate store")
		}

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(runsStatus),
			Limit:  runsLimit,
		})
		if err != nil {
			return err
		}

		if runsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}
		for _, run := range runs {
			fmt.Println(formatRunLine(run))
		}
		return nil
	},
}

func formatRunLine(run model.Run) string {
	line := fmt.Sprintf("%s  %-8s  %s  %s", run.CreatedAt.Format("2006-01-02 15:04"), run.Status, run.ID, run.DataFile)
	if run.Summary != nil {
		line += fmt.Sprintf("  (%d records, %d rejected)", run.Summary.TotalProcessed, run.Summary.TotalRejected)
	}
	return line
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	runsCmd.Flags().StringVar(&runsStatus, "status", "", "filter by status (running, success, partial, failed)")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(runsCmd)
}
