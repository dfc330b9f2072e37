package version_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"leakfix/pkg/version"
)

func TestGet_String(t *testing.T) {
	t.Parallel()

	info := version.Get()

	assert.Equal(t, version.Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t,
		"leakfix version "+info.Version+" (commit: "+info.GitCommit+") built at "+info.BuildTime+
			" with "+info.GoVersion+" on "+runtime.GOOS+"/"+runtime.GOARCH,
		info.String())
}
