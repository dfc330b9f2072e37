// Package ignore matches slash-separated relative paths against gitignore-style patterns.
// It is used to prune directories such as node_modules from the walk.
package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FileName is the per-root ignore file picked up by the walker.
const FileName = ".leakfixignore"

// Pattern encapsulates a compiled regular expression pattern,
// a negation flag, and metadata about the pattern's origin.
type Pattern struct {
	Regexp *regexp.Regexp // Compiled regular expression for the pattern.
	Negate bool           // Indicates if the pattern is a negation (starts with '!').
	Line   string         // Original pattern line.
	LineNo int            // Line number in the source (1-based).
	Source string         // File the pattern came from, empty for inline patterns.
}

// Matcher represents an ordered collection of ignore patterns. Later patterns win.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New initializes an empty Matcher. A nil logger is replaced by a no-op logger.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// CompileLines compiles pattern lines, typically from configuration or flags.
func (m *Matcher) CompileLines(lines ...string) {
	m.compile("", lines)
}

// CompileFile reads an ignore file and compiles its lines. A missing file is not an error.
func (m *Matcher) CompileFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
			return nil
		}
		m.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return err
	}

	lines := strings.Split(string(content), "\n")
	m.compile(path, lines)
	m.logger.Debug("Compiled ignore file", zap.String("filePath", path), zap.Int("lineCount", len(lines)))
	return nil
}

func (m *Matcher) compile(source string, lines []string) {
	for i, line := range lines {
		re, negate := parsePatternLine(line, i+1, m.logger)
		if re == nil {
			continue
		}
		p := &Pattern{
			Regexp: re,
			Negate: negate,
			Line:   line,
			LineNo: i + 1,
			Source: source,
		}
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled ignore pattern",
			zap.String("source", source),
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// Match reports whether relPath is ignored. Directories should carry a trailing slash.
func (m *Matcher) Match(relPath string) bool {
	matched, _ := m.MatchWithPattern(relPath)
	return matched
}

// MatchWithPattern reports whether relPath is ignored and returns the last pattern that decided it.
func (m *Matcher) MatchWithPattern(relPath string) (bool, *Pattern) {
	path := filepath.ToSlash(relPath)

	matched := false
	var decided *Pattern
	for _, p := range m.patterns {
		if p.Regexp.MatchString(path) {
			matched = !p.Negate
			decided = p
		}
	}

	return matched, decided
}

// parsePatternLine turns one ignore line into a compiled regex and a negation flag.
// Returns nil for blank lines, comments and patterns that fail to compile.
func parsePatternLine(line string, lineNo int, logger *zap.Logger) (*regexp.Regexp, bool) {
	trimmed := strings.TrimSpace(line)

	// Ignore empty lines and comments
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// Escaped leading '#' or '!'
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}
	if trimmed == "" {
		return nil, false
	}

	compiled, err := regexp.Compile(globToRegex(trimmed))
	if err != nil {
		logger.Error("Invalid ignore pattern",
			zap.String("pattern", trimmed),
			zap.Int("lineNo", lineNo),
			zap.Error(err))
		return nil, false
	}

	return compiled, negate
}
