package report

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rabi3laser/visibility-doctor/internal/actions"
	"github.com/rabi3laser/visibility-doctor/internal/doctor"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
	"github.com/rabi3laser/visibility-doctor/pkg/pathutil"
)

const planManifestVersion = "1.0"

// planManifest is the YAML layout of an action-plan report.
type planManifest struct {
	GeneratedAt     time.Time        `yaml:"generated_at"`
	ManifestVersion string           `yaml:"manifest_version"`
	RunID           string           `yaml:"run_id"`
	ListingID       string           `yaml:"listing_id"`
	ListingURL      string           `yaml:"listing_url"`
	Actions         []actions.Action `yaml:"actions"`
	Metadata        planMetadata     `yaml:"metadata"`
}

// planMetadata summarizes the plan for a reader skimming the manifest.
type planMetadata struct {
	ActionsCount         int     `yaml:"actions_count"`
	QuickWinsCount       int     `yaml:"quick_wins_count"`
	TotalTimeHours       float64 `yaml:"total_time_hours"`
	TotalCostEUR         float64 `yaml:"total_cost_eur"`
	PotentialGainPercent float64 `yaml:"potential_gain_percent"`
}

// planFormat writes the ROI-ordered action plan as a YAML manifest.
type planFormat struct {
	logger logger.Logger
}

func (f *planFormat) Generate(result *doctor.Result, outputPath string) error {
	validPath, err := pathutil.ValidateOutputPath(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	plan := result.ActionPlan
	if plan == nil {
		return fmt.Errorf("result %s has no action plan", result.RunID)
	}
	manifest := planManifest{
		GeneratedAt:     time.Now().UTC(),
		ManifestVersion: planManifestVersion,
		RunID:           result.RunID,
		ListingID:       result.ListingID,
		ListingURL:      result.ListingURL,
		Actions:         plan.Actions,
		Metadata: planMetadata{
			ActionsCount:         len(plan.Actions),
			QuickWinsCount:       len(plan.QuickWins),
			TotalTimeHours:       plan.TotalTimeHours,
			TotalCostEUR:         plan.TotalCostEUR,
			PotentialGainPercent: plan.PotentialGainPercent,
		},
	}

	file, err := os.Create(validPath) // #nosec G304 - path is validated
	if err != nil {
		return fmt.Errorf("creating plan manifest: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			f.logger.Warn("Failed to close plan manifest", "error", closeErr)
		}
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(manifest); err != nil {
		return fmt.Errorf("encoding plan manifest: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finalizing plan manifest: %w", err)
	}

	f.logger.Info("Wrote plan manifest", "path", validPath, "actions", len(plan.Actions))
	return nil
}

func (f *planFormat) Name() string { return "plan" }

func (f *planFormat) Description() string {
	return "ROI-ordered action plan as a YAML manifest"
}
