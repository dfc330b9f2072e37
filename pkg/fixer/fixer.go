// Package fixer walks a directory tree and routes event listener and timer calls in script
// files through the optional global manager objects, rewriting files in place.
package fixer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"leakfix/pkg/ignore"

	"go.uber.org/zap"
)

// Execute runs the fixer with console output on stdout.
func Execute(args *Arguments, logger *zap.Logger) error {
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()
	}

	if _, err := Run(args, NewConsoleReporter(os.Stdout, false), logger); err != nil {
		logger.Error("Failed to execute fixer", zap.Error(err))
		return fmt.Errorf("fixer execution failed: %w", err)
	}
	return nil
}

// Run enumerates files under args.Root, processes each in order and reports the summary.
// The first read or write error aborts the run.
func Run(args *Arguments, reporter Reporter, logger *zap.Logger) (*Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}

	r, err := newRunner(args, reporter, logger)
	if err != nil {
		return nil, err
	}

	summary, err := r.runAll()
	if err != nil {
		return summary, err
	}

	if args.ReportPath != "" {
		if err := WriteReport(args.ReportPath, summary, logger); err != nil {
			return summary, err
		}
		logger.Info("Wrote run report", zap.String("report", args.ReportPath))
	}
	return summary, nil
}

// runner carries the state shared by one-shot runs and watch mode.
type runner struct {
	args     *Arguments
	excl     ExclusionSet
	matcher  *ignore.Matcher
	reporter Reporter
	logger   *zap.Logger

	// written remembers the content last written per path; nil outside watch mode.
	written map[string]string
}

func newRunner(args *Arguments, reporter Reporter, logger *zap.Logger) (*runner, error) {
	matcher := ignore.New(logger)
	matcher.CompileLines(args.Ignore...)
	if err := matcher.CompileFile(filepath.Join(args.Root, ignore.FileName)); err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}

	logger.Debug("Prepared fixer",
		zap.String("root", args.Root),
		zap.String("extension", args.Extension),
		zap.Strings("exclude", args.Exclude),
		zap.Int("ignorePatterns", matcher.Len()),
		zap.Bool("dryRun", args.DryRun))

	return &runner{
		args:     args,
		excl:     NewExclusionSet(args.Exclude...),
		matcher:  matcher,
		reporter: reporter,
		logger:   logger,
	}, nil
}

func (r *runner) runAll() (*Summary, error) {
	startTime := time.Now()
	r.logger.Info("Starting rewrite run", zap.String("root", r.args.Root))
	r.reporter.Start(r.args.Root)

	files, err := CollectFiles(r.args.Root, r.args.Extension, r.matcher, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}

	summary, err := r.process(files)
	if err != nil {
		return summary, err
	}
	summary.Elapsed = time.Since(startTime)

	r.reporter.Summary(summary)
	r.logger.Info("Rewrite run completed",
		zap.Int("total", summary.Total),
		zap.Int("modified", summary.Modified),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

// process handles files sequentially, stopping at the first error.
func (r *runner) process(files []string) (*Summary, error) {
	summary := &Summary{Root: r.args.Root, DryRun: r.args.DryRun}

	for _, path := range files {
		res, err := r.processOne(path)
		if err != nil {
			return summary, err
		}
		summary.add(res)
	}

	return summary, nil
}

// processOne reports and rewrites a single file, remembering written content in watch mode.
func (r *runner) processOne(path string) (FileResult, error) {
	if !r.excl.Contains(filepath.Base(path)) {
		r.reporter.Processing(path)
	}

	res, content, err := processFile(path, r.args, r.excl, r.logger)
	if err != nil {
		return res, err
	}
	if r.written != nil && res.Status == StatusFixed {
		r.written[path] = content
	}

	r.reporter.Done(res)
	return res, nil
}
