// File: pkg/ignore/patterns.go
package ignore

import (
	"regexp"
	"strings"
)

// Precompiled regular expressions used in pattern parsing.
var (
	doubleStarMiddlePattern   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailingPattern = regexp.MustCompile(`/\*\*$`)
	doubleStarLeadingPattern  = regexp.MustCompile(`^\*\*/`)
)

// Placeholders keep '**' expansions away from the single-star pass.
const (
	anyDirsToken  = "\x00"
	anyCharsToken = "\x01"
)

// globToRegex converts a gitignore-style glob into an anchored regular expression.
func globToRegex(pattern string) string {
	rooted := strings.HasPrefix(pattern, "/")
	dirOnly := strings.HasSuffix(pattern, "/")

	body := strings.TrimPrefix(pattern, "/")
	body = escapeSpecialChars(body)
	body = handleDoubleStarPatterns(body)
	body = wildcardToRegex(body)
	body = strings.ReplaceAll(body, anyDirsToken, "(.*/)?")
	body = strings.ReplaceAll(body, anyCharsToken, ".*")

	return anchorPattern(body, rooted, dirOnly)
}

// escapeSpecialChars escapes regex special characters except for '*', '?', and '/'.
func escapeSpecialChars(pattern string) string {
	for _, char := range `\.+()|^$[]{}` {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// handleDoubleStarPatterns replaces '**' segments with placeholders.
func handleDoubleStarPatterns(pattern string) string {
	pattern = doubleStarMiddlePattern.ReplaceAllLiteralString(pattern, "/"+anyDirsToken)
	pattern = doubleStarTrailingPattern.ReplaceAllLiteralString(pattern, "/"+anyCharsToken)
	pattern = doubleStarLeadingPattern.ReplaceAllLiteralString(pattern, anyDirsToken)
	return pattern
}

// wildcardToRegex converts '*' and '?' to regex equivalents that never cross a '/'.
func wildcardToRegex(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "*", `[^/]*`)
	return strings.ReplaceAll(pattern, "?", `[^/]`)
}

// anchorPattern anchors the regex to the whole relative path.
// Unrooted patterns may match at any directory depth.
func anchorPattern(body string, rooted, dirOnly bool) string {
	if dirOnly {
		body += ".*$"
	} else {
		body += "(|/.*)$"
	}

	if rooted {
		return "^" + body
	}
	return "^(|.*/)" + body
}
