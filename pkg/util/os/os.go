package os

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir makes sure dir exists and is a directory, creating it with
// 0755 permissions when missing. With mustBeEmpty set, an existing
// non-empty directory is rejected. It reports whether the directory was
// created by this call.
func EnsureDir(dir string, mustBeEmpty bool) (bool, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dir, 0755); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if !info.IsDir() {
		return false, fmt.Errorf("%s is not a directory", dir)
	}

	if mustBeEmpty {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		if len(entries) > 0 {
			return false, fmt.Errorf("directory %s is not empty", dir)
		}
	}
	return false, nil
}

// ListFiles resolves path to the regular files it names: the path
// itself, or every regular file directly inside it when it is a
// directory (non-recursive).
func ListFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", path, err)
	}

	if info.Mode().IsRegular() {
		return []string{path}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is neither a regular file nor a directory", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}
