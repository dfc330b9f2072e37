package fixer_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"leakfix/pkg/config"
	"leakfix/pkg/fixer"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func defaultArgs(root string) *fixer.Arguments {
	return &fixer.Arguments{
		Root:      root,
		Extension: config.DefaultExtension,
		Exclude:   config.DefaultExclude(),
	}
}

// recordingReporter captures events; safe for use from the watch goroutine.
type recordingReporter struct {
	mu         sync.Mutex
	processing []string
	done       []fixer.FileResult
	summaries  chan *fixer.Summary
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{summaries: make(chan *fixer.Summary, 16)}
}

func (r *recordingReporter) Start(string) {}

func (r *recordingReporter) Processing(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processing = append(r.processing, path)
}

func (r *recordingReporter) Done(res fixer.FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = append(r.done, res)
}

func (r *recordingReporter) Summary(s *fixer.Summary) {
	r.summaries <- s
}

func (r *recordingReporter) results() []fixer.FileResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]fixer.FileResult(nil), r.done...)
}
