// Package pathutil provides utilities for safe path handling and validation.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// cleanAbs cleans a path, rejects directory traversal, and returns the
// absolute form.
func cleanAbs(path string) (string, error) {
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("path contains directory traversal pattern: %s", path)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("getting absolute path: %w", err)
	}
	return absPath, nil
}

// ValidateConfigPath validates a configuration file path.
// Config files are expected to be YAML files.
func ValidateConfigPath(path string) (string, error) {
	absPath, err := cleanAbs(path)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	if ext != ".yaml" && ext != ".yml" {
		return "", fmt.Errorf("config file must have .yaml or .yml extension, got %s", ext)
	}

	return absPath, nil
}

// ValidateOutputPath validates an output file path for reports.
// It ensures the parent directory exists and the path is safe.
func ValidateOutputPath(path string) (string, error) {
	absPath, err := cleanAbs(path)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return "", fmt.Errorf("parent directory does not exist: %s", dir)
	}

	return absPath, nil
}

// ValidateDataPath validates a path within the data directory.
// If dataDir is empty, it just validates the path is safe.
func ValidateDataPath(path, dataDir string) (string, error) {
	absPath, err := cleanAbs(path)
	if err != nil {
		return "", err
	}

	if dataDir == "" {
		return absPath, nil
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return "", fmt.Errorf("getting absolute data directory: %w", err)
	}

	if !isWithin(absPath, absDataDir) {
		return "", fmt.Errorf("path %s is not within data directory %s", path, dataDir)
	}

	return absPath, nil
}

// JoinAndValidate safely joins path components and validates the result
// stays within the base directory.
func JoinAndValidate(baseDir string, elems ...string) (string, error) {
	for _, elem := range elems {
		if strings.Contains(elem, "..") {
			return "", fmt.Errorf("path element contains directory traversal: %s", elem)
		}
	}

	joined := filepath.Join(append([]string{baseDir}, elems...)...)

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("getting absolute base directory: %w", err)
	}
	absJoined, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("getting absolute joined path: %w", err)
	}

	if !isWithin(absJoined, absBase) {
		return "", fmt.Errorf("joined path %s is not within base directory %s", joined, baseDir)
	}

	return absJoined, nil
}

// isWithin reports whether abs path p is inside (or equal to) directory dir.
func isWithin(p, dir string) bool {
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(p, dir) || p == strings.TrimSuffix(dir, string(filepath.Separator))
}
