package fixer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is used when Watch is given a non-positive debounce.
const DefaultDebounce = 250 * time.Millisecond

// Watch runs one full pass over args.Root and then reprocesses matching files as they change,
// until ctx is cancelled. The listener guard is always on in watch mode, otherwise every save
// would nest another wrapper around already rewritten listeners.
func Watch(ctx context.Context, args *Arguments, debounce time.Duration, reporter Reporter, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watchArgs := *args
	watchArgs.GuardListeners = true
	watchArgs.ReportPath = ""

	r, err := newRunner(&watchArgs, reporter, logger)
	if err != nil {
		return err
	}
	r.written = make(map[string]string)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := r.addWatchRecursive(watcher, watchArgs.Root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", watchArgs.Root, err)
	}

	if _, err := r.runAll(); err != nil {
		return err
	}
	logger.Info("Watching for changes", zap.String("root", watchArgs.Root), zap.Duration("debounce", debounce))

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopped watching", zap.String("root", watchArgs.Root))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)

			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
					if err := r.addWatchRecursive(watcher, path); err != nil {
						logger.Warn("Failed to watch new directory", zap.String("directory", path), zap.Error(err))
					}
					continue
				}
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !r.wantsPath(path) {
				continue
			}

			pending[path] = struct{}{}
			timer.Reset(debounce)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			clear(pending)
			sort.Strings(changed)
			r.processChanged(changed)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(watchErr))
			return fmt.Errorf("watcher error: %w", watchErr)
		}
	}
}

// processChanged reprocesses changed files one by one. A failing file is logged and skipped;
// the rest of the batch is still processed.
func (r *runner) processChanged(paths []string) {
	var files []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.logger.Warn("Failed to read changed file", zap.String("filePath", path), zap.Error(err))
			}
			continue
		}
		if last, ok := r.written[path]; ok && last == string(data) {
			r.logger.Debug("Ignoring event for content written by the fixer", zap.String("filePath", path))
			continue
		}
		files = append(files, path)
	}
	if len(files) == 0 {
		return
	}

	startTime := time.Now()
	summary := &Summary{Root: r.args.Root, DryRun: r.args.DryRun}
	for _, path := range files {
		res, err := r.processOne(path)
		if err != nil {
			r.logger.Error("Failed to process changed file", zap.String("filePath", path), zap.Error(err))
			continue
		}
		summary.add(res)
	}
	if summary.Total == 0 {
		return
	}
	summary.Elapsed = time.Since(startTime)
	r.reporter.Summary(summary)
}

// wantsPath reports whether a changed path is a candidate file under the root.
func (r *runner) wantsPath(path string) bool {
	if !matchesExtension(filepath.Base(path), r.args.Extension) {
		return false
	}
	rel, err := filepath.Rel(r.args.Root, path)
	if err != nil {
		return false
	}
	return !r.matcher.Match(filepath.ToSlash(rel))
}

func (r *runner) addWatchRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(r.args.Root, path); err == nil && rel != "." {
			if r.matcher.Match(filepath.ToSlash(rel) + "/") {
				return filepath.SkipDir
			}
		}
		r.logger.Debug("Watching directory", zap.String("directory", path))
		return watcher.Add(path)
	})
}
