// File: pkg/rewrite/patterns.go
package rewrite

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// RE2's \w, \s and \b are ASCII only. Script identifiers and whitespace are not, so the
// patterns spell out Unicode classes instead.
const (
	identClass = `[\p{L}\p{N}_]`
	spaceClass = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`
)

// Precompiled regular expressions used by the rewriter passes.
var (
	// ListenerCallPattern captures element, event, handler and the optional options argument
	// of an addEventListener call. Arguments are split on commas only, so nested calls or
	// arrow functions with commas are not understood.
	ListenerCallPattern = regexp.MustCompile(
		`(` + identClass + `+)\.addEventListener\(([^,]+),` + spaceClass + `*([^,]+)(?:,` + spaceClass + `*([^)]+))?\)`)

	// The timer patterns match the call head only; headRewriter rejects matches that
	// continue an identifier, e.g. ésetTimeout(.
	TimeoutCallPattern  = regexp.MustCompile(`setTimeout\(`)
	IntervalCallPattern = regexp.MustCompile(`setInterval\(`)
)

// isIdentRune reports whether r can be part of an identifier word.
func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// atWordStart reports whether s[i:] starts a new word, i.e. the rune before i is not
// an identifier rune.
func atWordStart(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isIdentRune(r)
}

// Global manager objects the rewritten code delegates to.
const (
	ListenerManager = "window.eventListenerManager"
	TimerManager    = "window.timerManager"
)

// Replacement heads for the timer passes. The original argument list follows unchanged.
const (
	TimeoutReplacement  = "(" + TimerManager + " ? " + TimerManager + ".setTimeout : setTimeout)("
	IntervalReplacement = "(" + TimerManager + " ? " + TimerManager + ".setInterval : setInterval)("
)

// Markers that mean a line was already routed through a manager.
var (
	timeoutMarkers  = []string{"timerManager.setTimeout", "window.setTimeout"}
	intervalMarkers = []string{"timerManager.setInterval", "window.setInterval"}
	listenerMarkers = []string{"eventListenerManager.add"}
)
