package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rabi3laser/visibility-doctor/internal/models"
)

// Snapshot file names inside a FileSource directory.
const (
	targetFile      = "target.json"
	competitorsFile = "competitors.json"
	gradeFile       = "grade.json"
)

// FileSource reads a previously captured snapshot directory containing
// target.json, competitors.json, and grade.json.
type FileSource struct {
	dir string
}

// NewFileSource opens a snapshot directory. The target file must exist;
// the competitors file is optional, the grade file is checked at read time.
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snapshot path %s is not a directory", dir)
	}
	if _, err := os.Stat(filepath.Join(dir, targetFile)); err != nil {
		return nil, fmt.Errorf("snapshot dir %s has no %s: %w", dir, targetFile, err)
	}
	return &FileSource{dir: dir}, nil
}

// Listing reads the snapshot's target record. The id must match the record,
// which guards against pointing a run at the wrong snapshot.
func (f *FileSource) Listing(ctx context.Context, id string) (models.Listing, error) {
	var listing models.Listing
	if err := f.readJSON(ctx, targetFile, &listing); err != nil {
		return models.Listing{}, err
	}
	if listing.ID != id {
		return models.Listing{}, fmt.Errorf("snapshot target is listing %s, not %s", listing.ID, id)
	}
	if err := listing.IsValid(); err != nil {
		return models.Listing{}, fmt.Errorf("invalid target record: %w", err)
	}
	return listing, nil
}

// Competitors reads the snapshot's peer records, dropping the target itself
// and capping the result at max.
func (f *FileSource) Competitors(ctx context.Context, id string, max int) ([]models.Competitor, error) {
	path := filepath.Join(f.dir, competitorsFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var competitors []models.Competitor
	if err := f.readJSON(ctx, competitorsFile, &competitors); err != nil {
		return nil, err
	}

	out := make([]models.Competitor, 0, len(competitors))
	for _, c := range competitors {
		if c.ID == id {
			continue
		}
		out = append(out, c)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out, nil
}

// Grade reads the snapshot's grade record. The file is required: a zero
// grade is indistinguishable from a host who never responds, so an absent
// file is an invalid snapshot, not an empty score.
func (f *FileSource) Grade(ctx context.Context, listing models.Listing) (models.GradeResult, error) {
	path := filepath.Join(f.dir, gradeFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return models.GradeResult{}, fmt.Errorf("snapshot dir %s has no %s: %w", f.dir, gradeFile, err)
	}

	var grade models.GradeResult
	if err := f.readJSON(ctx, gradeFile, &grade); err != nil {
		return models.GradeResult{}, err
	}
	return grade, nil
}

func (f *FileSource) readJSON(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(f.dir, name)
	data, err := os.ReadFile(path) //nolint:gosec // Path is inside the snapshot dir
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
