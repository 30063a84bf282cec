package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cambsdata/crimescope/internal/ingest"
)

var (
	mergeFolder string
	mergeOut    string
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge monthly CSV drops into a single data file",
	Long: `Recursively collects every .csv under the data folder (one file per
month in the police archive layout) and merges them into a single CSV
with one header row, ready for analyze.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		folder := mergeFolder
		if folder == "" {
			folder = cfg.Data.Folder
		}
		out := mergeOut
		if out == "" {
			out = filepath.Join(folder, cfg.Data.File)
		}

		rows, err := ingest.MergeDir(folder, out)
		if err != nil {
			return err
		}
		fmt.Printf("Merged %d rows into %s\n", rows, out)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeFolder, "folder", "", "folder to scan for csv files (default: configured data folder)")
	mergeCmd.Flags().StringVar(&mergeOut, "out", "", "merged output path (default: data folder + configured file name)")
	rootCmd.AddCommand(mergeCmd)
}
