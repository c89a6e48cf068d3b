package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rabi3laser/visibility-doctor/internal/doctor"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
	"github.com/rabi3laser/visibility-doctor/pkg/pathutil"
)

// jsonFormat writes the complete diagnosis result as indented JSON.
type jsonFormat struct {
	logger logger.Logger
}

func (f *jsonFormat) Generate(result *doctor.Result, outputPath string) error {
	validPath, err := pathutil.ValidateOutputPath(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if err := os.WriteFile(validPath, data, 0o600); err != nil {
		return fmt.Errorf("writing JSON report: %w", err)
	}

	f.logger.Info("Wrote JSON report", "path", validPath)
	return nil
}

func (f *jsonFormat) Name() string { return "json" }

func (f *jsonFormat) Description() string {
	return "Complete diagnosis result as indented JSON"
}
