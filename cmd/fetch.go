package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cambsdata/crimescope/internal/fetcher"
	"github.com/cambsdata/crimescope/internal/model"
)

var (
	fetchFrom  string
	fetchTo    string
	fetchForce string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download monthly street-crime CSVs from the police archive",
	Long: `Downloads one street-crime CSV per month from the open-data archive
into the data folder, one subdirectory per month. Follow with merge.

Example:
  crimescope fetch --from 2024-01 --to 2024-12`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		first, ok := model.ParseMonth(fetchFrom)
		if !ok {
			return eris.Errorf("fetch: invalid --from month %q", fetchFrom)
		}
		last, ok := model.ParseMonth(fetchTo)
		if !ok {
			return eris.Errorf("fetch: invalid --to month %q", fetchTo)
		}
		force := fetchForce
		if force == "" {
			force = cfg.Fetch.Force
		}

		client := fetcher.New(fetcher.Options{
			Timeout:        time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			RequestsPerSec: cfg.Fetch.RequestsPerSec,
		})
		paths, err := client.FetchMonths(cmd.Context(), cfg.Fetch.BaseURL, force, cfg.Data.Folder, first, last)
		if err != nil {
			return err
		}
		fmt.Printf("Downloaded %d monthly files into %s\n", len(paths), cfg.Data.Folder)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchFrom, "from", "", "first month to download (YYYY-MM)")
	fetchCmd.Flags().StringVar(&fetchTo, "to", "", "last month to download (YYYY-MM)")
	fetchCmd.Flags().StringVar(&fetchForce, "police-force", "", "police force slug (default: configured force)")
	_ = fetchCmd.MarkFlagRequired("from")
	_ = fetchCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(fetchCmd)
}
