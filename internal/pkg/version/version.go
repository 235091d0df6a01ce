// Package version 빌드 시점에 주입된 버전 정보와 실행 환경 정보를 제공합니다.
//
// 빌드 예:
//
//	go build -ldflags "-X github.com/darkkaiser/store-promoter/internal/pkg/version.appVersion=v1.2.0 \
//	    -X github.com/darkkaiser/store-promoter/internal/pkg/version.gitCommitHash=$(git rev-parse HEAD)"
//
// ldflags가 없으면 debug.ReadBuildInfo의 VCS 정보로 보완합니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const unknown = "unknown"

// ldflags로 주입되는 값입니다. 직접 읽지 말고 Get을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = "" // clean | dirty
	buildDate     = ""
)

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 둡니다.
var readBuildInfo = debug.ReadBuildInfo

var current = sync.OnceValue(func() Info {
	return resolve(Info{
		Version:    strings.TrimSpace(appVersion),
		Commit:     strings.TrimSpace(gitCommitHash),
		BuildDate:  strings.TrimSpace(buildDate),
		DirtyBuild: strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	})
})

// Info 빌드 정보입니다. /version 응답과 시작 로그에 사용됩니다.
type Info struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	BuildDate  string `json:"build_date"`
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	DirtyBuild bool   `json:"dirty_build"`
}

// Get 현재 바이너리의 빌드 정보를 반환합니다.
func Get() Info {
	return current()
}

// resolve 비어 있는 필드를 런타임 정보와 VCS 메타데이터로 채웁니다.
func resolve(bi Info) Info {
	bi.GoVersion = runtime.Version()
	bi.OS = runtime.GOOS
	bi.Arch = runtime.GOARCH

	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				if s.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}

		if bi.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			bi.Version = info.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}

	return bi
}

// Fields 구조화 로그에 그대로 넘길 수 있는 맵을 반환합니다.
func (i Info) Fields() map[string]any {
	return map[string]any{
		"version":     i.Version,
		"commit":      i.Commit,
		"build_date":  i.BuildDate,
		"go_version":  i.GoVersion,
		"dirty_build": i.DirtyBuild,
	}
}

// String "v1.2.0+dirty (commit: f25b8bf, date: ..., go1.24.11 linux/amd64)" 형태로 요약합니다.
func (i Info) String() string {
	v := i.Version
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, "commit: "+commit)
	}
	if i.BuildDate != "" {
		details = append(details, "date: "+i.BuildDate)
	}
	if i.GoVersion != "" {
		details = append(details, fmt.Sprintf("%s %s/%s", i.GoVersion, i.OS, i.Arch))
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
