// File: pkg/fixer/config.go
package fixer

import (
	"errors"
	"sort"
	"time"
)

// Sentinel errors returned by the walker and the file processor.
var (
	ErrRootNotFound = errors.New("root directory does not exist")
	ErrNotDirectory = errors.New("root is not a directory")
	ErrInvalidUTF8  = errors.New("file is not valid UTF-8")
)

// Arguments holds the configuration options for a rewriting run.
type Arguments struct {
	Root           string   // Directory to scan.
	Extension      string   // File suffix to match, including the dot.
	Exclude        []string // Basenames that are listed but never opened.
	Ignore         []string // Gitignore-style patterns pruned from the walk.
	DryRun         bool     // Compute changes without writing them.
	ShowDiff       bool     // Attach a line diff to every changed file.
	GuardListeners bool     // Skip lines already delegating to the listener manager.
	ReportPath     string   // Optional YAML report destination.
}

// ExclusionSet is an immutable set of basenames that are never rewritten.
type ExclusionSet struct {
	names map[string]struct{}
}

// NewExclusionSet builds an ExclusionSet from basenames.
func NewExclusionSet(names ...string) ExclusionSet {
	set := ExclusionSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		set.names[n] = struct{}{}
	}
	return set
}

// Contains reports whether name is excluded.
func (s ExclusionSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns the excluded basenames in sorted order.
func (s ExclusionSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Status is the outcome of processing one file.
type Status string

// File outcomes.
const (
	StatusExcluded  Status = "excluded"
	StatusFixed     Status = "fixed"
	StatusUnchanged Status = "unchanged"
	StatusWouldFix  Status = "would-fix"
)

// Modified reports whether the status counts towards the modified total.
func (s Status) Modified() bool {
	return s == StatusFixed || s == StatusWouldFix
}

// FileResult describes what happened to a single file.
type FileResult struct {
	Path      string `yaml:"path"`
	Name      string `yaml:"name"`
	Status    Status `yaml:"status"`
	Listeners int    `yaml:"listeners,omitempty"`
	Timeouts  int    `yaml:"timeouts,omitempty"`
	Intervals int    `yaml:"intervals,omitempty"`
	Bytes     int64  `yaml:"bytes,omitempty"` // Size of the content written, or that would be written.
	Diff      string `yaml:"diff,omitempty"`
}

// Rewrites returns the total number of substitutions made in the file.
func (r FileResult) Rewrites() int {
	return r.Listeners + r.Timeouts + r.Intervals
}

// Summary aggregates a run. Total counts every enumerated file, excluded ones included.
type Summary struct {
	Root     string
	DryRun   bool
	Total    int
	Modified int
	Files    []FileResult
	Elapsed  time.Duration
}

// Skipped is the number of files seen but not modified.
func (s *Summary) Skipped() int {
	return s.Total - s.Modified
}

func (s *Summary) add(res FileResult) {
	s.Total++
	if res.Status.Modified() {
		s.Modified++
	}
	s.Files = append(s.Files, res)
}
