// Package walker enumerates source files with a given extension under one
// or more root directories.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceFile pairs a file's absolute path with its path relative to the
// root it was found under. RelPath is slash-separated so allowlist keys
// and report output are stable across platforms.
type SourceFile struct {
	AbsPath string
	RelPath string
}

// skippedDirs are directory names never descended into.
var skippedDirs = map[string]bool{
	"target":       true,
	"vendor":       true,
	"node_modules": true,
}

// shouldSkipDir returns true if the directory should be skipped.
func shouldSkipDir(name string) bool {
	return skippedDirs[name] || strings.HasPrefix(name, ".")
}

// Collect walks each root and returns every regular file whose name ends
// in ext, sorted by relative path. A root that does not exist or cannot be
// read aborts the walk; there is no partial-result recovery.
func Collect(roots []string, ext string) ([]SourceFile, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("no root directories to scan")
	}

	var files []SourceFile
	seen := make(map[string]bool)

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to access root %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root %s is not a directory", root)
		}

		err = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if path != root && shouldSkipDir(fi.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ext) {
				return nil
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if seen[abs] {
				return nil
			}
			seen[abs] = true

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, SourceFile{AbsPath: path, RelPath: filepath.ToSlash(rel)})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})

	return files, nil
}
