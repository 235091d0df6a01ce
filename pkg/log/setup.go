package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileExt = "log"

	defaultDir        = "logs"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	setupOnce      sync.Once
	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로깅 시스템을 초기화합니다.
//
// 프로세스 생명주기 동안 한 번만 실행되며, 이후 호출은 최초 호출의 결과(Closer, 에러)를 그대로 반환합니다.
// 반환된 Closer는 반드시 defer로 닫아야 버퍼에 남은 로그가 디스크에 기록됩니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setup(opts)
	})

	return globalCloser, globalSetupErr
}

func setup(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)

	// 실제 출력은 hook이 담당하므로 기본 출력과 포맷팅은 비활성화합니다.
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	dir := opts.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	h, closers := newHook(opts, dir)
	logrus.AddHook(h)

	c := &closer{
		closers: closers,
		hook:    h,
	}

	// Fatal 로그로 os.Exit이 호출되기 직전에 남은 로그를 기록하고 파일을 닫습니다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}

// newHook Options에 따라 로그 파일들을 준비하고, 이를 분배할 hook을 생성합니다.
func newHook(opts Options, dir string) (*hook, []io.Closer) {
	var closers []io.Closer

	h := &hook{
		formatter: newFormatter(opts),
	}

	mainLogger := newRotatingFile(opts, dir, "")
	closers = append(closers, mainLogger)
	h.mainWriter = mainLogger

	if opts.EnableCriticalLog {
		criticalLogger := newRotatingFile(opts, dir, "critical")
		closers = append(closers, criticalLogger)
		h.criticalWriter = criticalLogger
	}

	if opts.EnableVerboseLog {
		verboseLogger := newRotatingFile(opts, dir, "verbose")
		closers = append(closers, verboseLogger)
		h.verboseWriter = verboseLogger
	}

	if opts.EnableConsoleLog {
		h.consoleWriter = os.Stdout
	}

	return h, closers
}

// newRotatingFile lumberjack 기반의 로테이션 로그 파일을 생성합니다.
// suffix가 있으면 "{name}.{suffix}.log", 없으면 "{name}.log" 파일을 사용합니다.
// 실제 파일은 첫 번째 쓰기 시점에 열립니다.
func newRotatingFile(opts Options, dir, suffix string) *lumberjack.Logger {
	name := opts.Name
	if suffix != "" {
		name += "." + suffix
	}

	maxSize := opts.MaxSizeMB
	if maxSize == 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := opts.MaxBackups
	if maxBackups == 0 {
		maxBackups = defaultMaxBackups
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, fmt.Sprintf("%s.%s", name, fileExt)),
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     opts.MaxAge,
		LocalTime:  true,
	}
}
