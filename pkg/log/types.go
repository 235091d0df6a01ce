package log

import (
	"github.com/sirupsen/logrus"
)

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	// PanicLevel 로그를 기록한 후 panic을 발생시킵니다.
	PanicLevel Level = logrus.PanicLevel

	// FatalLevel 로그를 기록한 후 os.Exit(1)로 프로세스를 종료합니다.
	FatalLevel Level = logrus.FatalLevel

	// ErrorLevel 관리자의 확인이 필요한 에러입니다. 게시 실패 등이 여기에 해당합니다.
	ErrorLevel Level = logrus.ErrorLevel

	// WarnLevel 당장 에러는 아니지만 주의가 필요한 상태입니다.
	WarnLevel Level = logrus.WarnLevel

	// InfoLevel 정상적인 작동 흐름입니다.
	InfoLevel Level = logrus.InfoLevel

	// DebugLevel 디버깅용 상세 정보입니다.
	DebugLevel Level = logrus.DebugLevel

	// TraceLevel Debug보다 더 세밀한 정보입니다.
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

type (
	Fields    = logrus.Fields
	Entry     = logrus.Entry
	Hook      = logrus.Hook
	Logger    = logrus.Logger
	Formatter = logrus.Formatter
)
