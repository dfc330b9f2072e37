// File: pkg/fixer/report.go
package fixer

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Reporter receives progress events from a run.
type Reporter interface {
	Start(root string)
	Processing(path string)
	Done(res FileResult)
	Summary(s *Summary)
}

// ConsoleReporter prints human-readable progress lines.
type ConsoleReporter struct {
	out     io.Writer
	header  *color.Color
	ok      *color.Color
	skip    *color.Color
	pending *color.Color
	removed *color.Color
	added   *color.Color
}

// NewConsoleReporter writes to out. Colour is stripped when noColor is set.
func NewConsoleReporter(out io.Writer, noColor bool) *ConsoleReporter {
	r := &ConsoleReporter{
		out:     out,
		header:  color.New(color.FgCyan, color.Bold),
		ok:      color.New(color.FgGreen),
		skip:    color.New(color.FgYellow),
		pending: color.New(color.FgMagenta),
		removed: color.New(color.FgRed),
		added:   color.New(color.FgGreen),
	}
	if noColor {
		for _, c := range []*color.Color{r.header, r.ok, r.skip, r.pending, r.removed, r.added} {
			c.DisableColor()
		}
	}
	return r
}

// Start prints the run banner and the root being processed.
func (r *ConsoleReporter) Start(root string) {
	r.header.Fprintln(r.out, "🚀 Starting memory leak fixes...")
	fmt.Fprintf(r.out, "📁 Processing files in: %s\n\n", root)
}

// Processing announces a file before it is read.
func (r *ConsoleReporter) Processing(path string) {
	fmt.Fprintf(r.out, "🔧 Processing %s...\n", baseName(path))
}

// Done prints the outcome for one file, followed by its diff when one was computed.
func (r *ConsoleReporter) Done(res FileResult) {
	switch res.Status {
	case StatusFixed:
		r.ok.Fprintf(r.out, "✅ Fixed %s (%s, %s)\n", res.Name, plural(res.Rewrites(), "rewrite"), humanize.Bytes(uint64(res.Bytes)))
	case StatusWouldFix:
		r.pending.Fprintf(r.out, "📝 Would fix %s (%s)\n", res.Name, plural(res.Rewrites(), "rewrite"))
	case StatusUnchanged:
		r.skip.Fprintf(r.out, "⏭️  No changes needed for %s\n", res.Name)
	case StatusExcluded:
		r.skip.Fprintf(r.out, "⏭️  Skipping %s (excluded)\n", res.Name)
	}

	if res.Diff != "" {
		r.printDiff(res.Diff)
	}
}

func (r *ConsoleReporter) printDiff(diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "-"):
			r.removed.Fprintln(r.out, "    "+line)
		case strings.HasPrefix(line, "+"):
			r.added.Fprintln(r.out, "    "+line)
		}
	}
}

// Summary prints the totals table and the closing line.
func (r *ConsoleReporter) Summary(s *Summary) {
	modifiedLabel := "Files modified:"
	if s.DryRun {
		modifiedLabel = "Files to modify:"
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.SeparateHeader = false
	tbl.Style().Options.SeparateRows = false
	tbl.AppendRow(table.Row{"Total files:", s.Total})
	tbl.AppendRow(table.Row{modifiedLabel, s.Modified})
	tbl.AppendRow(table.Row{"Files skipped:", s.Skipped()})

	fmt.Fprintln(r.out)
	r.header.Fprintln(r.out, "📊 Summary:")
	fmt.Fprintln(r.out, tbl.Render())
	fmt.Fprintln(r.out)
	if s.DryRun {
		r.pending.Fprintln(r.out, "✨ Done! Dry run, no files were written.")
		return
	}
	r.ok.Fprintln(r.out, "✨ Done! Memory leak fixes applied.")
}

// NopReporter discards every event.
type NopReporter struct{}

// Start implements Reporter.
func (NopReporter) Start(string) {}

// Processing implements Reporter.
func (NopReporter) Processing(string) {}

// Done implements Reporter.
func (NopReporter) Done(FileResult) {}

// Summary implements Reporter.
func (NopReporter) Summary(*Summary) {}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
