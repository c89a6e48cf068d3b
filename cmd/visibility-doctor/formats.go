package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rabi3laser/visibility-doctor/internal/report"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List available report formats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.GetGlobalLogger()
			for _, name := range report.ListFormats() {
				format, err := report.GetFormat(name, log)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", name, format.Description())
			}
			return nil
		},
	}
}
