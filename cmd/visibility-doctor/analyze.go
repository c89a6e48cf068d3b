package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rabi3laser/visibility-doctor/internal/doctor"
	"github.com/rabi3laser/visibility-doctor/internal/report"
	"github.com/rabi3laser/visibility-doctor/internal/sources"
	"github.com/rabi3laser/visibility-doctor/internal/storage"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		snapshotDir    string
		maxCompetitors int
		noMarket       bool
		formats        []string
		outputDir      string
		dataDir        string
	)

	cmd := &cobra.Command{
		Use:   "analyze <listing-url-or-id>",
		Short: "Diagnose a listing from a captured snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if maxCompetitors > 0 {
				cfg.MaxCompetitors = maxCompetitors
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}

			source, err := sources.NewFileSource(snapshotDir)
			if err != nil {
				return err
			}

			log := logger.GetGlobalLogger()
			d := doctor.New(cfg, source, log)

			result, err := d.Diagnose(cmd.Context(), args[0], doctor.Options{
				CompareMarket: !noMarket,
			})
			if err != nil {
				return err
			}

			store := storage.NewStorageWithLogger(cfg.DataDir, log)
			runDir, err := store.SaveResult(result)
			if err != nil {
				return fmt.Errorf("saving run: %w", err)
			}
			log.Info("Saved diagnosis run", "dir", runDir)

			fmt.Fprintln(cmd.OutOrStdout(), report.Render(result))

			if outputDir == "" {
				outputDir = runDir
			}
			for _, name := range formats {
				name = strings.TrimSpace(name)
				if name == "" || name == "text" {
					continue
				}
				format, err := report.GetFormat(name, log)
				if err != nil {
					return err
				}
				outputPath := filepath.Join(outputDir, "report."+extensionFor(name))
				if err := format.Generate(result, outputPath); err != nil {
					return fmt.Errorf("generating %s report: %w", name, err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&snapshotDir, "snapshot", "s", "", "Snapshot directory with target.json, competitors.json, grade.json")
	cmd.Flags().IntVar(&maxCompetitors, "max-competitors", 0, "Cap on analyzed competitors (default from config)")
	cmd.Flags().BoolVar(&noMarket, "no-market", false, "Skip the market comparison")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Report formats to write (json, plan)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for report files (default: the run directory)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Base directory for stored runs (default from config)")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

// extensionFor maps a format name to its file extension.
func extensionFor(format string) string {
	switch format {
	case "plan":
		return "yaml"
	case "text":
		return "txt"
	default:
		return format
	}
}
