// =============================================================================
// Invoice Automator - File Utilities
// =============================================================================
//
// This module provides the file handling shared by the CLI commands:
//   - Document discovery in the input directory
//   - Output writing with collision-safe names
//   - Directory management
//
// =============================================================================

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnsureDirectories creates all given directories if they don't exist.
func EnsureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Discover scans a directory tree for files whose name passes the accept
// filter, returning paths in stable (sorted) order.
func Discover(dir string, accept func(path string) bool) ([]string, error) {
	var found []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if accept(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(found)
	return found, nil
}

// WriteUnique writes data into dir under the given file name. If a file
// with that name already exists, a counter suffix is inserted before the
// extension ("name_1.xlsx", "name_2.xlsx", ...) until the name is free.
// Returns the path actually written.
func WriteUnique(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	path := filepath.Join(dir, name)
	for counter := 1; exists(path); counter++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
