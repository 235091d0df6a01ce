package errors

import (
	"path/filepath"
	"runtime"
)

// defaultCallerSkip 스택 수집 시 건너뛸 프레임 수입니다.
// runtime.Callers, captureStack, New/Wrap 계열 함수의 3단계를 건너뛰어
// 에러를 생성한 사용자 코드가 첫 번째 프레임이 되도록 합니다.
const defaultCallerSkip = 3

// maxStackFrames 에러 하나에 기록하는 최대 프레임 수
const maxStackFrames = 5

// StackFrame 호출 스택의 한 프레임입니다.
type StackFrame struct {
	File     string // 파일 이름
	Line     int    // 줄 번호
	Function string // 함수 이름
}

func captureStack(skip int) []StackFrame {
	pc := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	callersFrames := runtime.CallersFrames(pc[:n])

	frames := make([]StackFrame, 0, n)
	for {
		frame, more := callersFrames.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}

	return frames
}
