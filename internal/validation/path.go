// Package validation provides safety checks for user-supplied file paths.
// It guards against path traversal and unwritable output locations.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateOutputBase validates an output path given without extension.
// Missing parent directories are allowed because the exporter creates them,
// but the nearest existing ancestor must be a writable directory.
func ValidateOutputBase(outputBase string) error {
	if strings.TrimSpace(outputBase) == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	if hasTraversal(outputBase) {
		return fmt.Errorf("path traversal detected in output path: %s", outputBase)
	}

	absPath, err := filepath.Abs(filepath.Clean(outputBase))
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory, expected a file name without extension: %s", outputBase)
	}

	dir, err := nearestExisting(filepath.Dir(absPath))
	if err != nil {
		return err
	}

	// Check if directory is writable by attempting to create a temp file
	testFile := filepath.Join(dir, ".plotexport_write_test")
	f, err := os.OpenFile(testFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("output directory is not writable: %s: %w", dir, err)
	}
	f.Close()
	os.Remove(testFile)

	return nil
}

// ValidateInputPath validates an input path (definition file or directory).
// Returns error if path doesn't exist or is not of the expected kind.
func ValidateInputPath(inputPath string, mustBeDir bool) error {
	if inputPath == "" {
		return fmt.Errorf("input path cannot be empty")
	}

	cleanPath := filepath.Clean(inputPath)

	if !filepath.IsAbs(inputPath) && hasTraversal(inputPath) {
		return fmt.Errorf("potentially unsafe path detected: %s", inputPath)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input path does not exist: %s", cleanPath)
		}
		return fmt.Errorf("failed to access input path: %w", err)
	}

	if mustBeDir && !info.IsDir() {
		return fmt.Errorf("input path must be a directory: %s", cleanPath)
	}
	if !mustBeDir && info.IsDir() {
		return fmt.Errorf("input path must be a file: %s", cleanPath)
	}

	return nil
}

// hasTraversal reports whether any element of p is "..".
func hasTraversal(p string) bool {
	for _, part := range strings.FieldsFunc(filepath.ToSlash(p), func(r rune) bool { return r == '/' }) {
		if part == ".." {
			return true
		}
	}
	return false
}

// nearestExisting walks up from dir to the first existing ancestor and
// checks that it is a directory.
func nearestExisting(dir string) (string, error) {
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("output path parent is not a directory: %s", dir)
			}
			return dir, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to access output directory: %w", err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("output directory does not exist: %s", dir)
		}
		dir = parent
	}
}

// Validator exposes the package functions as methods for callers that take
// a path validator dependency.
type Validator struct{}

func (Validator) ValidateOutputBase(path string) error { return ValidateOutputBase(path) }

func (Validator) ValidateInputPath(path string, mustBeDir bool) error {
	return ValidateInputPath(path, mustBeDir)
}
