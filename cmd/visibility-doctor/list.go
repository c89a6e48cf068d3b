package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rabi3laser/visibility-doctor/internal/storage"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

func newListCommand() *cobra.Command {
	var (
		limit   int
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored diagnosis runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}

			store := storage.NewStorageWithLogger(cfg.DataDir, logger.GetGlobalLogger())
			analyses, err := store.ListAnalyses(limit)
			if err != nil {
				return err
			}
			if len(analyses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored runs.")
				return nil
			}

			for _, info := range analyses {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  listing %-12s  run %s\n",
					info.AnalyzedAt.Format("2006-01-02 15:04"), info.ListingID, info.RunID)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Base directory for stored runs (default from config)")

	return cmd
}
