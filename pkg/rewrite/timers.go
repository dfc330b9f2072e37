package rewrite

import (
	"regexp"
	"strings"
)

// TimeoutPass returns the setTimeout pass. Lines that already reference the manager or
// window.setTimeout are skipped, which makes the pass idempotent.
func TimeoutPass() Pass {
	return Pass{
		Name:  "timeouts",
		Guard: containsAny(timeoutMarkers),
		Apply: headRewriter(TimeoutCallPattern, TimeoutReplacement),
	}
}

// IntervalPass returns the setInterval pass.
func IntervalPass() Pass {
	return Pass{
		Name:  "intervals",
		Guard: containsAny(intervalMarkers),
		Apply: headRewriter(IntervalCallPattern, IntervalReplacement),
	}
}

// FixTimeouts rewrites bare setTimeout( call heads in content.
func FixTimeouts(content string) (string, int) {
	return Lines(content, TimeoutPass())
}

// FixIntervals rewrites bare setInterval( call heads in content.
func FixIntervals(content string) (string, int) {
	return Lines(content, IntervalPass())
}

// headRewriter replaces the call head only; the argument list is left as written.
// Heads preceded by an identifier rune belong to another name and are kept.
func headRewriter(pattern *regexp.Regexp, replacement string) func(string) (string, int) {
	return func(line string) (string, int) {
		var b strings.Builder
		last, n := 0, 0
		for _, loc := range pattern.FindAllStringIndex(line, -1) {
			if !atWordStart(line, loc[0]) {
				continue
			}
			b.WriteString(line[last:loc[0]])
			b.WriteString(replacement)
			last = loc[1]
			n++
		}
		if n == 0 {
			return line, 0
		}
		b.WriteString(line[last:])
		return b.String(), n
	}
}
