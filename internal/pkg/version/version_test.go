package version

import (
	"runtime"
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

func TestResolve(t *testing.T) {
	t.Run("ldflags 값이 우선합니다", func(t *testing.T) {
		withBuildInfo(t, &debug.BuildInfo{
			Main: debug.Module{Version: "v0.0.9"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "ffffffffffff"},
				{Key: "vcs.time", Value: "2024-01-01T00:00:00Z"},
			},
		}, true)

		bi := resolve(Info{Version: "v1.2.0", Commit: "abc1234", BuildDate: "2025-06-01"})

		assert.Equal(t, "v1.2.0", bi.Version)
		assert.Equal(t, "abc1234", bi.Commit)
		assert.Equal(t, "2025-06-01", bi.BuildDate)
		assert.Equal(t, runtime.Version(), bi.GoVersion)
	})

	t.Run("VCS 정보로 보완합니다", func(t *testing.T) {
		withBuildInfo(t, &debug.BuildInfo{
			Main: debug.Module{Version: "v0.3.1"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789ab"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true)

		bi := resolve(Info{})

		assert.Equal(t, "v0.3.1", bi.Version)
		assert.Equal(t, "0123456789ab", bi.Commit)
		assert.True(t, bi.DirtyBuild)
	})

	t.Run("정보가 없으면 unknown", func(t *testing.T) {
		withBuildInfo(t, nil, false)

		bi := resolve(Info{})

		assert.Equal(t, unknown, bi.Version)
		assert.Equal(t, unknown, bi.Commit)
	})

	t.Run("(devel) 버전은 사용하지 않습니다", func(t *testing.T) {
		withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)

		assert.Equal(t, unknown, resolve(Info{}).Version)
	})
}

func TestInfo_String(t *testing.T) {
	bi := Info{
		Version:    "v1.2.0",
		Commit:     "f25b8bf0123",
		BuildDate:  "2025-06-01",
		GoVersion:  "go1.24.11",
		OS:         "linux",
		Arch:       "amd64",
		DirtyBuild: true,
	}

	assert.Equal(t, "v1.2.0+dirty (commit: f25b8bf, date: 2025-06-01, go1.24.11 linux/amd64)", bi.String())
	assert.Equal(t, "unknown", Info{Version: unknown, Commit: unknown}.String())
}

func TestInfo_Fields(t *testing.T) {
	fields := Info{Version: "v1", Commit: "c"}.Fields()

	assert.Equal(t, "v1", fields["version"])
	assert.Equal(t, "c", fields["commit"])
}
