package log

// callerPathPrefix 로그에 기록되는 호출자 경로에서 생략할 모듈 경로
const callerPathPrefix = "github.com/darkkaiser/store-promoter"

// NewProductionOptions 운영 환경에 맞춘 로그 설정을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:   appName,
		Level:  InfoLevel,
		Format: FormatText,

		MaxAge:     30,  // 30일 보관
		MaxSizeMB:  100, // 100MB 단위 로테이션
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		EnableConsoleLog:  false,

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}

// NewDevelopmentOptions 개발 환경에 맞춘 로그 설정을 반환합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:   appName,
		Level:  TraceLevel,
		Format: FormatText,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableCriticalLog: false,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,

		ReportCaller:     true,
		CallerPathPrefix: callerPathPrefix,
	}
}

// NewCommandOptions 단발성 CLI 명령(post, ask 등)에 맞춘 로그 설정을 반환합니다.
// 파일에는 운영 수준으로 기록하면서 터미널에도 진행 상황을 출력합니다.
func NewCommandOptions(appName string) Options {
	opts := NewProductionOptions(appName)
	opts.EnableConsoleLog = true
	opts.EnableVerboseLog = false
	return opts
}
