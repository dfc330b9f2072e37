// File: pkg/fixer/helpers.go
package fixer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// reportDocument is the YAML shape of a run report.
type reportDocument struct {
	Root     string       `yaml:"root"`
	DryRun   bool         `yaml:"dry_run"`
	Total    int          `yaml:"total"`
	Modified int          `yaml:"modified"`
	Skipped  int          `yaml:"skipped"`
	Elapsed  string       `yaml:"elapsed"`
	Files    []FileResult `yaml:"files"`
}

// WriteReport writes the summary of a run as YAML to path, creating parent directories.
func WriteReport(path string, s *Summary, logger *zap.Logger) error {
	doc := reportDocument{
		Root:     s.Root,
		DryRun:   s.DryRun,
		Total:    s.Total,
		Modified: s.Modified,
		Skipped:  s.Skipped(),
		Elapsed:  s.Elapsed.Round(time.Millisecond).String(),
		Files:    s.Files,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		logger.Error("Failed to encode report", zap.Error(err))
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := ensureDirectory(filepath.Dir(path), logger); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := writeToFile(path, data, 0o644, logger); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, perm os.FileMode, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}

func baseName(path string) string {
	return filepath.Base(path)
}
