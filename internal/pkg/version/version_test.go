package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func withInjected(t *testing.T, v, c, d string) {
	t.Helper()
	ov, oc, od := Version, Commit, Date
	Version, Commit, Date = v, c, d
	t.Cleanup(func() { Version, Commit, Date = ov, oc, od })
}

func TestInjectedValuesWin(t *testing.T) {
	withInjected(t, "v1.2.3", "abcdef0", "2026-09-01")
	withBuildInfo(t, nil, false)

	assert.Equal(t, "v1.2.3", GetVersion())
	assert.Equal(t, "abcdef0", GetCommit())
	assert.Equal(t, "2026-09-01", GetBuildDate())
	assert.Equal(t, "v1.2.3, commit abcdef0, built at 2026-09-01", GetVersionString())
	assert.Equal(t, "mysite/v1.2.3", UserAgent())
}

func TestFallbackToBuildInfo(t *testing.T) {
	withInjected(t, "dev", "unknown", "unknown")
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Path: ModulePath, Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-09-10T08:30:00Z"},
		},
	}, true)

	info := GetBuildInfo()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "0123456", info.Commit)
	assert.Equal(t, "2026-09-10 08:30:00", info.Date)
}

func TestNoBuildInfo(t *testing.T) {
	withInjected(t, "", "", "")
	withBuildInfo(t, nil, false)

	assert.Equal(t, "unknown (no build info)", GetVersion())
	assert.Equal(t, "unknown", GetCommit())
	assert.Equal(t, "unknown", GetBuildDate())
}
