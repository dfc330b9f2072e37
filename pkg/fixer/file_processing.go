package fixer

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"leakfix/pkg/rewrite"

	"go.uber.org/zap"
)

// ProcessFile rewrites a single file in place. Excluded files are never opened.
func ProcessFile(path string, args *Arguments, excl ExclusionSet, logger *zap.Logger) (FileResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	res, _, err := processFile(path, args, excl, logger)
	return res, err
}

// processFile also returns the content now on disk when the file was written.
func processFile(path string, args *Arguments, excl ExclusionSet, logger *zap.Logger) (FileResult, string, error) {
	name := filepath.Base(path)
	res := FileResult{Path: path, Name: name}

	if excl.Contains(name) {
		logger.Debug("Skipping excluded file", zap.String("filePath", path))
		res.Status = StatusExcluded
		return res, "", nil
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.Error("Failed to stat file", zap.String("filePath", path), zap.Error(err))
		return res, "", fmt.Errorf("error reading file %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read file", zap.String("filePath", path), zap.Error(err))
		return res, "", fmt.Errorf("error reading file %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		logger.Error("File is not valid UTF-8", zap.String("filePath", path))
		return res, "", fmt.Errorf("%w: %s", ErrInvalidUTF8, path)
	}

	original := string(data)
	out := rewrite.Apply(original, rewrite.Options{GuardListeners: args.GuardListeners})
	res.Listeners, res.Timeouts, res.Intervals = out.Listeners, out.Timeouts, out.Intervals

	logger.Debug("Applied rewriter passes",
		zap.String("filePath", path),
		zap.Int("listeners", out.Listeners),
		zap.Int("timeouts", out.Timeouts),
		zap.Int("intervals", out.Intervals))

	if !out.Changed(original) {
		res.Status = StatusUnchanged
		return res, "", nil
	}

	res.Bytes = int64(len(out.Content))
	if args.ShowDiff {
		res.Diff = LineDiff(original, out.Content)
	}

	if args.DryRun {
		res.Status = StatusWouldFix
		return res, "", nil
	}

	if err := os.WriteFile(path, []byte(out.Content), info.Mode().Perm()); err != nil {
		logger.Error("Failed to write file", zap.String("filePath", path), zap.Error(err))
		return res, "", fmt.Errorf("error writing file %s: %w", path, err)
	}
	logger.Debug("Rewrote file", zap.String("filePath", path), zap.Int64("bytes", res.Bytes))

	res.Status = StatusFixed
	return res, out.Content, nil
}
