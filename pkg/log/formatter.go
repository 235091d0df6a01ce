package log

import (
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// silentFormatter 아무런 동작도 하지 않는 포맷터입니다.
// logrus는 출력이 io.Discard여도 포맷팅을 수행하므로 전역 포맷터로 지정해 그 비용을 없앱니다.
// 실제 포맷팅은 hook에서 한 번만 수행합니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *logrus.Entry) ([]byte, error) {
	return nil, nil
}

// newFormatter Options에 맞는 출력용 포맷터를 생성합니다.
func newFormatter(opts Options) Formatter {
	prettyfier := func(frame *runtime.Frame) (function string, file string) {
		function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
		if opts.CallerPathPrefix != "" {
			if cut, found := strings.CutPrefix(function, opts.CallerPathPrefix); found {
				function = "..." + cut
			}
		}
		return
	}

	if opts.Format == FormatJSON {
		return &logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: prettyfier,
		}
	}

	return &logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  time.RFC3339,
		CallerPrettyfier: prettyfier,
	}
}
