// File: pkg/fixer/traversal.go
package fixer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"leakfix/pkg/ignore"

	"go.uber.org/zap"
)

// CollectFiles enumerates files under root whose name ends in ext. The root's immediate
// children come first, then every nested descendant, each group in lexical order.
// Paths are returned once even though the two groups overlap.
func CollectFiles(root, ext string, matcher *ignore.Matcher, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if matcher == nil {
		matcher = ignore.New(logger)
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	// Top level first
	entries, err := os.ReadDir(root)
	if err != nil {
		logger.Error("Failed to read root directory", zap.String("root", root), zap.Error(err))
		return nil, fmt.Errorf("failed to read root %s: %w", root, err)
	}
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if entry.IsDir() || !matchesExtension(entry.Name(), ext) {
			continue
		}
		if matcher.Match(entry.Name()) {
			logger.Debug("Skipping ignored file", zap.String("filePath", path))
			continue
		}
		if isRegularFile(path, entry) {
			add(path)
		}
	}

	// Then every descendant
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(walkErr))
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path != root && matcher.Match(relPath+"/") {
				logger.Debug("Skipping ignored directory during traversal", zap.String("directory", path))
				return filepath.SkipDir
			}
			return nil
		}

		if !matchesExtension(d.Name(), ext) || matcher.Match(relPath) {
			return nil
		}
		if isRegularFile(path, d) {
			add(path)
		}
		return nil
	})
	if err != nil {
		logger.Error("Error during file traversal", zap.String("root", root), zap.Error(err))
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	logger.Debug("Completed file collection", zap.String("root", root), zap.Int("files", len(files)))
	return files, nil
}

func matchesExtension(name, ext string) bool {
	return strings.HasSuffix(name, ext)
}

// isRegularFile accepts regular files and symlinks that resolve to one.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
