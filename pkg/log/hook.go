package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 로그 레벨에 따라 로그를 여러 Writer로 분배합니다.
//
// 라우팅 정책:
//   - consoleWriter: 모든 레벨
//   - criticalWriter: ERROR 이상
//   - verboseWriter: DEBUG 이하 (이 경우 mainWriter에는 기록하지 않음)
//   - mainWriter: INFO 이상
type hook struct {
	mainWriter     io.Writer
	criticalWriter io.Writer
	verboseWriter  io.Writer
	consoleWriter  io.Writer

	formatter Formatter

	mu     sync.RWMutex // Fire(Read Lock)와 Close(Write Lock) 사이의 동시성 제어
	closed bool
}

func (h *hook) Levels() []Level {
	return AllLevels
}

func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	// 콘솔 출력 실패는 로깅 전체에 영향을 주지 않도록 보고만 합니다.
	if h.consoleWriter != nil {
		if _, err := h.consoleWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 콘솔 출력 실패: %v\n", err)
		}
	}

	var firstErr error
	write := func(w io.Writer, name string) {
		if w == nil {
			return
		}
		if _, err := w.Write(msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] %s 로그 파일 쓰기 실패: %v\n", name, err)
		}
	}

	if entry.Level <= ErrorLevel {
		write(h.criticalWriter, "Critical")
	}

	if entry.Level >= DebugLevel {
		write(h.verboseWriter, "Verbose")
		return firstErr
	}

	write(h.mainWriter, "Main")

	return firstErr
}

// Close 이후의 모든 로그 기록 요청을 무시하도록 전환합니다.
// 진행 중인 Fire 호출이 끝날 때까지 대기합니다.
func (h *hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	return nil
}
