// Package storage handles persistence of diagnosis runs.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rabi3laser/visibility-doctor/internal/doctor"
	"github.com/rabi3laser/visibility-doctor/pkg/logger"
	"github.com/rabi3laser/visibility-doctor/pkg/pathutil"
)

const (
	analysesDir    = "analyses"
	resultFile     = "result.json"
	dirTimeLayout  = "2006-01-02-150405"
	dirPermissions = 0o750
)

// Storage saves and loads diagnosis results under a base directory. Each run
// gets its own directory named <timestamp>-<listing-id> so lexical order is
// chronological order.
type Storage struct {
	logger  logger.Logger
	baseDir string
}

// NewStorage creates a storage instance using the global logger.
func NewStorage(baseDir string) *Storage {
	return NewStorageWithLogger(baseDir, logger.GetGlobalLogger())
}

// NewStorageWithLogger creates a storage instance with a custom logger.
func NewStorageWithLogger(baseDir string, log logger.Logger) *Storage {
	return &Storage{
		baseDir: baseDir,
		logger:  log,
	}
}

// AnalysisInfo describes one saved run.
type AnalysisInfo struct {
	Dir        string
	ListingID  string
	RunID      string
	AnalyzedAt time.Time
}

// SaveResult persists a diagnosis result and returns its run directory.
func (s *Storage) SaveResult(result *doctor.Result) (string, error) {
	name := fmt.Sprintf("%s-%s", result.AnalyzedAt.UTC().Format(dirTimeLayout), result.ListingID)
	runDir, err := pathutil.JoinAndValidate(s.baseDir, analysesDir, name)
	if err != nil {
		return "", fmt.Errorf("invalid run directory: %w", err)
	}

	if mkErr := os.MkdirAll(runDir, dirPermissions); mkErr != nil {
		return "", fmt.Errorf("creating run directory: %w", mkErr)
	}

	resultPath, err := pathutil.JoinAndValidate(runDir, resultFile)
	if err != nil {
		return "", fmt.Errorf("invalid result path: %w", err)
	}
	if err := s.saveJSON(resultPath, result); err != nil {
		return "", fmt.Errorf("saving result: %w", err)
	}

	s.logger.Debug("Saved diagnosis result", "path", resultPath, "run_id", result.RunID)
	return runDir, nil
}

// LoadResult reads a result from a run directory.
func (s *Storage) LoadResult(runDir string) (*doctor.Result, error) {
	resultPath, err := pathutil.JoinAndValidate(runDir, resultFile)
	if err != nil {
		return nil, fmt.Errorf("invalid result path: %w", err)
	}

	var result doctor.Result
	if err := s.loadJSON(resultPath, &result); err != nil {
		return nil, fmt.Errorf("loading result: %w", err)
	}
	return &result, nil
}

// FindLatestAnalysis returns the most recent run directory.
func (s *Storage) FindLatestAnalysis() (string, error) {
	dir := filepath.Join(s.baseDir, analysesDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no analyses found")
		}
		return "", fmt.Errorf("reading analyses directory: %w", err)
	}

	var latest string
	for _, entry := range entries {
		if entry.IsDir() {
			if latest == "" || entry.Name() > latest {
				latest = entry.Name()
			}
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no analysis directories found")
	}

	return filepath.Join(dir, latest), nil
}

// ListAnalyses returns saved runs, newest first, up to limit (0 for all).
func (s *Storage) ListAnalyses(limit int) ([]AnalysisInfo, error) {
	dir := filepath.Join(s.baseDir, analysesDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading analyses directory: %w", err)
	}

	var analyses []AnalysisInfo
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if !entry.IsDir() {
			continue
		}

		runDir := filepath.Join(dir, entry.Name())
		result, err := s.LoadResult(runDir)
		if err != nil {
			s.logger.Debug("Skipping unreadable analysis", "dir", entry.Name(), "error", err)
			continue
		}

		analyses = append(analyses, AnalysisInfo{
			Dir:        runDir,
			ListingID:  result.ListingID,
			RunID:      result.RunID,
			AnalyzedAt: result.AnalyzedAt,
		})
		if limit > 0 && len(analyses) >= limit {
			break
		}
	}

	return analyses, nil
}

// saveJSON saves data as indented JSON to a file.
func (s *Storage) saveJSON(path string, data any) (err error) {
	file, err := os.Create(path) // #nosec G304 - path is validated
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", closeErr)
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// loadJSON loads JSON data from a file.
func (s *Storage) loadJSON(path string, data any) error {
	raw, err := os.ReadFile(path) //nolint:gosec // Path is validated
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}
