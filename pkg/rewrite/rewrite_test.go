package rewrite_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leakfix/pkg/rewrite"
)

func TestIsComment(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"// btn.addEventListener('click', f);": true,
		"    // indented":                      true,
		" * setTimeout(tick, 10)":              true,
		"*/":                                   true,
		"\t*":                                  true,
		"/* block start setTimeout(a) */":      false,
		"setTimeout(a, 1); // trailing":        false,
		"":                                     false,
	}

	for line, want := range cases {
		assert.Equal(t, want, rewrite.IsComment(line), "line %q", line)
	}
}

func TestFixEventListeners_TwoArguments(t *testing.T) {
	t.Parallel()

	out, n := rewrite.FixEventListeners("btn.addEventListener('click', onClick);")

	assert.Equal(t, 1, n)
	assert.Equal(t,
		"(window.eventListenerManager ? window.eventListenerManager.add(btn, 'click', onClick) : "+
			"btn.addEventListener('click', onClick));",
		out)
}

func TestFixEventListeners_OptionsArgument(t *testing.T) {
	t.Parallel()

	out, n := rewrite.FixEventListeners("  el.addEventListener('scroll', onScroll, { passive: true });")

	assert.Equal(t, 1, n)
	assert.Equal(t,
		"  (window.eventListenerManager ? window.eventListenerManager.add(el, 'scroll', onScroll, { passive: true }) : "+
			"el.addEventListener('scroll', onScroll, { passive: true }));",
		out)
}

func TestFixEventListeners_MultipleCallsOnOneLine(t *testing.T) {
	t.Parallel()

	out, n := rewrite.FixEventListeners("a.addEventListener('x', f); b.addEventListener('y', g);")

	assert.Equal(t, 2, n)
	assert.Contains(t, out, "window.eventListenerManager.add(a, 'x', f)")
	assert.Contains(t, out, "window.eventListenerManager.add(b, 'y', g)")
}

func TestFixEventListeners_NoMatchLeavesLine(t *testing.T) {
	t.Parallel()

	in := "document.removeEventListener('click', onClick);"
	out, n := rewrite.FixEventListeners(in)

	assert.Zero(t, n)
	assert.Equal(t, in, out)
}

func TestFixEventListeners_NotIdempotent(t *testing.T) {
	t.Parallel()

	once, _ := rewrite.FixEventListeners("btn.addEventListener('click', onClick);")
	twice, n := rewrite.FixEventListeners(once)

	assert.Equal(t, 1, n)
	assert.NotEqual(t, once, twice)
}

func TestFixTimeouts_RewritesHeadOnly(t *testing.T) {
	t.Parallel()

	out, n := rewrite.FixTimeouts("setTimeout(doWork, 500);")

	assert.Equal(t, 1, n)
	assert.Equal(t, "(window.timerManager ? window.timerManager.setTimeout : setTimeout)(doWork, 500);", out)
	assert.True(t, strings.HasSuffix(out, "(doWork, 500);"))
}

func TestFixTimeouts_WordBoundary(t *testing.T) {
	t.Parallel()

	in := "resetTimeout(a); clearTimeout(b);"
	out, n := rewrite.FixTimeouts(in)

	assert.Zero(t, n)
	assert.Equal(t, in, out)
}

func TestPasses_UnicodeIdentifiersAndSpaces(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fix  func(string) (string, int)
		in   string
		want string
		n    int
	}{
		{
			name: "listener on accented element",
			fix:  rewrite.FixEventListeners,
			in:   "élément.addEventListener('click', onClick);",
			want: "(window.eventListenerManager ? window.eventListenerManager.add(élément, 'click', onClick) : " +
				"élément.addEventListener('click', onClick));",
			n: 1,
		},
		{
			name: "no-break space after comma",
			fix:  rewrite.FixEventListeners,
			in:   "btn.addEventListener('click',\u00a0onClick);",
			want: "(window.eventListenerManager ? window.eventListenerManager.add(btn, 'click', onClick) : " +
				"btn.addEventListener('click', onClick));",
			n: 1,
		},
		{
			name: "timeout continuing an accented identifier",
			fix:  rewrite.FixTimeouts,
			in:   "ésetTimeout(a, 1);",
			want: "ésetTimeout(a, 1);",
		},
		{
			name: "timeout after a digit",
			fix:  rewrite.FixTimeouts,
			in:   "x1setTimeout(a, 1);",
			want: "x1setTimeout(a, 1);",
		},
		{
			name: "interval mixed on one line",
			fix:  rewrite.FixIntervals,
			in:   "ésetInterval(a); setInterval(b, 2);",
			want: "ésetInterval(a); (window.timerManager ? window.timerManager.setInterval : setInterval)(b, 2);",
			n:    1,
		},
		{
			name: "timeout after accented text and punctuation",
			fix:  rewrite.FixTimeouts,
			in:   "const délai = setTimeout(tick, 10);",
			want: "const délai = (window.timerManager ? window.timerManager.setTimeout : setTimeout)(tick, 10);",
			n:    1,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, n := tc.fix(tc.in)
			assert.Equal(t, tc.want, out)
			assert.Equal(t, tc.n, n)
		})
	}
}

func TestFixTimeouts_SkipsQualifiedLines(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"window.setTimeout(a, 1); setTimeout(b, 2);",
		"window.timerManager.setTimeout(c, 3);",
	}, "\n")
	out, n := rewrite.FixTimeouts(in)

	assert.Zero(t, n)
	assert.Equal(t, in, out)
}

func TestFixTimeouts_Idempotent(t *testing.T) {
	t.Parallel()

	in := "const id = setTimeout(() => run(1, 2), 100);\nsetTimeout(next);"
	once, n := rewrite.FixTimeouts(in)
	require.Equal(t, 2, n)

	twice, n := rewrite.FixTimeouts(once)
	assert.Zero(t, n)
	assert.Equal(t, once, twice)
}

func TestFixIntervals_RewritesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	once, n := rewrite.FixIntervals("this.poll = setInterval(this.refresh, 1000);")
	require.Equal(t, 1, n)
	assert.Equal(t,
		"this.poll = (window.timerManager ? window.timerManager.setInterval : setInterval)(this.refresh, 1000);",
		once)

	twice, n := rewrite.FixIntervals(once)
	assert.Zero(t, n)
	assert.Equal(t, once, twice)
}

func TestLines_CommentsAreByteIdentical(t *testing.T) {
	t.Parallel()

	comments := []string{
		"// btn.addEventListener('click', onClick);",
		"   * setTimeout(doWork, 500);",
		"\t// setInterval(poll, 10);",
	}
	in := strings.Join(comments, "\n")

	for _, pass := range []rewrite.Pass{rewrite.ListenerPass(), rewrite.TimeoutPass(), rewrite.IntervalPass()} {
		out, n := rewrite.Lines(in, pass)
		assert.Zero(t, n, pass.Name)
		assert.Equal(t, in, out, pass.Name)
	}
}

func TestLines_PreservesCarriageReturns(t *testing.T) {
	t.Parallel()

	out, n := rewrite.FixTimeouts("setTimeout(a, 1);\r\n// setTimeout(b, 2);\r\n")

	assert.Equal(t, 1, n)
	assert.Equal(t,
		"(window.timerManager ? window.timerManager.setTimeout : setTimeout)(a, 1);\r\n// setTimeout(b, 2);\r\n",
		out)
}

func TestApply_RunsAllPassesInOrder(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"// setup",
		"btn.addEventListener('click', onClick);",
		"setTimeout(doWork, 500);",
		"setInterval(poll, 1000);",
	}, "\n")

	res := rewrite.Apply(in, rewrite.Options{})

	assert.Equal(t, 1, res.Listeners)
	assert.Equal(t, 1, res.Timeouts)
	assert.Equal(t, 1, res.Intervals)
	assert.Equal(t, 3, res.Total())
	assert.True(t, res.Changed(in))

	lines := strings.Split(res.Content, "\n")
	assert.Equal(t, "// setup", lines[0])
	assert.Contains(t, lines[1], "window.eventListenerManager.add(btn")
	assert.Contains(t, lines[2], "window.timerManager.setTimeout")
	assert.Contains(t, lines[3], "window.timerManager.setInterval")
}

func TestApply_CommentOnlyContentUnchanged(t *testing.T) {
	t.Parallel()

	in := "// el.addEventListener('load', init);\n * window.addEventListener('resize', fit);\n"
	res := rewrite.Apply(in, rewrite.Options{})

	assert.False(t, res.Changed(in))
	assert.Zero(t, res.Total())
}

func TestApply_GuardListenersMakesApplyIdempotent(t *testing.T) {
	t.Parallel()

	in := "btn.addEventListener('click', onClick);\nsetTimeout(doWork, 500);"
	opts := rewrite.Options{GuardListeners: true}

	once := rewrite.Apply(in, opts)
	require.True(t, once.Changed(in))

	twice := rewrite.Apply(once.Content, opts)
	assert.False(t, twice.Changed(once.Content))
	assert.Zero(t, twice.Total())

	unguarded := rewrite.Apply(once.Content, rewrite.Options{})
	assert.Equal(t, 1, unguarded.Listeners)
	assert.Zero(t, unguarded.Timeouts)
}
