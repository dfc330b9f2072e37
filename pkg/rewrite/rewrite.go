// Package rewrite implements the line-oriented passes that route event listener and timer
// calls through the optional global manager objects.
package rewrite

import "strings"

// Pass is a single line-oriented substitution.
type Pass struct {
	Name string
	// Guard reports whether a line must be left as-is. May be nil.
	Guard func(line string) bool
	// Apply rewrites one non-comment line and returns the number of substitutions made.
	Apply func(line string) (string, int)
}

// Options tunes the behaviour of Apply.
type Options struct {
	// GuardListeners skips lines that already delegate to the listener manager.
	GuardListeners bool
}

// Result holds rewritten content and per-pass substitution counts.
type Result struct {
	Content   string
	Listeners int
	Timeouts  int
	Intervals int
}

// Total returns the number of substitutions across all passes.
func (r Result) Total() int {
	return r.Listeners + r.Timeouts + r.Intervals
}

// Changed reports whether the rewritten content differs from original.
func (r Result) Changed(original string) bool {
	return r.Content != original
}

// IsComment reports whether a line is a line comment or a block comment continuation.
func IsComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*")
}

// Lines applies pass to every line of content that is neither a comment nor guarded.
// Lines are split and rejoined on "\n" so any other terminator stays part of the line.
func Lines(content string, pass Pass) (string, int) {
	lines := strings.Split(content, "\n")
	count := 0

	for i, line := range lines {
		if IsComment(line) {
			continue
		}
		if pass.Guard != nil && pass.Guard(line) {
			continue
		}

		rewritten, n := pass.Apply(line)
		lines[i] = rewritten
		count += n
	}

	return strings.Join(lines, "\n"), count
}

// Apply runs the listener, timeout and interval passes in that order.
func Apply(content string, opts Options) Result {
	res := Result{}

	listeners := ListenerPass()
	if opts.GuardListeners {
		listeners.Guard = containsAny(listenerMarkers)
	}

	res.Content, res.Listeners = Lines(content, listeners)
	res.Content, res.Timeouts = Lines(res.Content, TimeoutPass())
	res.Content, res.Intervals = Lines(res.Content, IntervalPass())

	return res
}

// containsAny returns a guard matching lines that contain any of markers.
func containsAny(markers []string) func(string) bool {
	return func(line string) bool {
		for _, m := range markers {
			if strings.Contains(line, m) {
				return true
			}
		}
		return false
	}
}
