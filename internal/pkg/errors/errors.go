// Package errors 애플리케이션 전용 에러 처리 시스템을 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며, Wrap 함수를 통해 원인 에러를 보존한 채
// 컨텍스트를 누적할 수 있습니다.
//
// # 게시 흐름의 에러 분류
//
// MissingCredential:
//   - 게시에 필요한 4개의 인증 정보 중 하나라도 비어 있는 경우
//   - 서명이나 네트워크 요청을 시작하기 전에 검사되며, 프로세스는 종료 코드 1로 끝납니다.
//
// RemoteRejection:
//   - 게시 API가 2xx가 아닌 상태 코드를 반환한 경우
//   - 응답 본문과 상태 코드가 원인 에러로 보존됩니다. 재시도하지 않습니다.
//
// LocalFault:
//   - 상품 목록 파일이나 순환 상태 파일의 JSON이 손상된 경우
//
// 그 외의 타입(Internal, System, InvalidInput 등)은 설정 검증, API 서버 등
// 부가 기능에서 사용합니다.
//
// # 사용법
//
//	err := errors.New(errors.NotFound, "캠페인을 찾을 수 없습니다")
//
//	if err != nil {
//	    return errors.Wrap(err, errors.LocalFault, "상품 목록 파일을 해석할 수 없습니다")
//	}
//
//	if errors.Is(err, errors.MissingCredential) {
//	    os.Exit(1)
//	}
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 애플리케이션에서 발생하는 에러를 표준화하여 표현하는 구조체입니다.
type AppError struct {
	errType ErrorType    // 에러의 종류
	message string       // 사용자에게 보여줄 메시지
	cause   error        // 이 에러가 발생하게 된 원인 에러
	stack   []StackFrame // 에러 생성 시점의 호출 스택
}

// Type 에러의 타입을 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 에러 메시지를 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

// Stack 스택 트레이스를 반환합니다.
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

// Error 표준 error 인터페이스를 구현합니다.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

// Unwrap 표준 errors.Unwrap 인터페이스를 구현합니다.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Format fmt.Formatter 인터페이스를 구현합니다.
// %+v 사용 시 에러 체인과 스택 트레이스를 함께 출력합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

			// 체인 중간의 AppError는 스택을 생략하고, 체인의 끝 또는 외부 에러와의 경계에서만 출력합니다.
			var target *AppError
			if e.cause == nil || !errors.As(e.cause, &target) {
				if len(e.stack) > 0 {
					fmt.Fprint(s, "\nStack trace:")
					for _, frame := range e.stack {
						funcName := frame.Function
						if idx := strings.LastIndex(funcName, "/"); idx != -1 {
							funcName = funcName[idx+1:]
						}
						fmt.Fprintf(s, "\n\t%s:%d %s", frame.File, frame.Line, funcName)
					}
				}
			}

			if e.cause != nil {
				fmt.Fprint(s, "\nCaused by:\n")
				if formatter, ok := e.cause.(fmt.Formatter); ok {
					formatter.Format(s, verb)
				} else {
					fmt.Fprintf(s, "\t%v", e.cause)
				}
			}
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{
		errType: errType,
		message: message,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Newf 포맷 문자열을 사용하여 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrap 기존 에러를 감싸서 새로운 에러를 생성합니다. err가 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: message,
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrapf 포맷 문자열을 사용하여 기존 에러를 감쌉니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is 에러 체인에 특정 ErrorType이 포함되어 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// As 표준 errors.As의 별칭입니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 에러 체인의 가장 안쪽에 있는 원인 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}

	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// UnderlyingType 에러 체인에서 가장 안쪽에 있는 AppError의 ErrorType을 반환합니다.
//
// 예를 들어 RemoteRejection 에러를 Internal로 다시 감싸더라도 RemoteRejection을 반환하므로,
// HTTP 응답 코드나 프로세스 종료 사유를 결정할 때 에러의 본래 성격을 알 수 있습니다.
// 체인에 AppError가 없으면 Unknown을 반환합니다.
func UnderlyingType(err error) ErrorType {
	lastType := Unknown

	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			lastType = appErr.errType
		}
		err = errors.Unwrap(err)
	}

	return lastType
}
