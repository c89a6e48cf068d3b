// Package main is the entry point for the visibility-doctor CLI. It
// diagnoses why a short-term rental listing under-performs against nearby
// competitors and turns the findings into a prioritized, ROI-ranked action
// plan.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rabi3laser/visibility-doctor/internal/config"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

var (
	version = "dev"

	debug      bool
	logFormat  string
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "visibility-doctor",
		Short:   "Diagnose a rental listing's search visibility",
		Long:    `visibility-doctor compares a listing against its local market, classifies the gaps that cost it visibility, and produces an ROI-ordered action plan to close them.`,
		Version: version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetupLogger(debug, logFormat)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newFormatsCommand())
	rootCmd.AddCommand(newListCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration for a command.
func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}
