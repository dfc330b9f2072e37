package fixer_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leakfix/pkg/fixer"
)

func TestProcessFile_ExcludedFileIsNeverOpened(t *testing.T) {
	t.Parallel()

	// The file does not even exist; an excluded name must short-circuit before any I/O.
	path := filepath.Join(t.TempDir(), "TimerManager.js")
	excl := fixer.NewExclusionSet("TimerManager.js")

	res, err := fixer.ProcessFile(path, defaultArgs(filepath.Dir(path)), excl, nil)
	require.NoError(t, err)
	assert.Equal(t, fixer.StatusExcluded, res.Status)
	assert.Equal(t, "TimerManager.js", res.Name)
}

func TestProcessFile_MissingFileIsAnError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gone.js")

	_, err := fixer.ProcessFile(path, defaultArgs(filepath.Dir(path)), fixer.NewExclusionSet(), nil)
	assert.Error(t, err)
}

func TestProcessFile_CountsPerPass(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeFile(t, root, "multi.js",
		"a.addEventListener('x', f); b.addEventListener('y', g, true);\n"+
			"setTimeout(one, 1); setTimeout(two, 2);\n"+
			"setInterval(three, 3);\n")

	res, err := fixer.ProcessFile(path, defaultArgs(root), fixer.NewExclusionSet(), nil)
	require.NoError(t, err)

	assert.Equal(t, fixer.StatusFixed, res.Status)
	assert.Equal(t, 2, res.Listeners)
	assert.Equal(t, 2, res.Timeouts)
	assert.Equal(t, 1, res.Intervals)
	assert.Equal(t, 5, res.Rewrites())
	assert.Empty(t, res.Diff)
}

func TestExclusionSet(t *testing.T) {
	t.Parallel()

	set := fixer.NewExclusionSet("TimerManager.js", "EventListenerManager.js", "TimerManager.js")

	assert.True(t, set.Contains("TimerManager.js"))
	assert.False(t, set.Contains("timermanager.js"))
	assert.Equal(t, []string{"EventListenerManager.js", "TimerManager.js"}, set.Names())
}
