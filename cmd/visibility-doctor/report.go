package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rabi3laser/visibility-doctor/internal/report"
	"github.com/rabi3laser/visibility-doctor/internal/storage"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

func newReportCommand() *cobra.Command {
	var (
		analysisDir string
		formatName  string
		outputPath  string
		dataDir     string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Regenerate a report from a stored diagnosis run",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}

			log := logger.GetGlobalLogger()
			store := storage.NewStorageWithLogger(cfg.DataDir, log)

			runDir := analysisDir
			if runDir == "" || runDir == "latest" {
				runDir, err = store.FindLatestAnalysis()
				if err != nil {
					return err
				}
			}

			result, err := store.LoadResult(runDir)
			if err != nil {
				return err
			}

			format, err := report.GetFormat(formatName, log)
			if err != nil {
				return err
			}

			if outputPath == "" && formatName != "text" {
				outputPath = filepath.Join(runDir, "report."+extensionFor(formatName))
			}
			return format.Generate(result, outputPath)
		},
	}

	cmd.Flags().StringVarP(&analysisDir, "analysis", "a", "latest", "Run directory, or 'latest'")
	cmd.Flags().StringVarP(&formatName, "format", "f", "text", "Report format (see 'formats')")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file ('-' for stdout with text)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Base directory for stored runs (default from config)")

	return cmd
}
