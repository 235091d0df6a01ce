package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

// StandardLogger 전역 logrus 로거를 반환합니다.
// cron, echo 등 외부 라이브러리에 로거를 주입할 때 사용합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetLevel 전역 로그 레벨을 변경합니다.
func SetLevel(level Level) {
	logrus.SetLevel(level)
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component

	return logrus.WithFields(newFields)
}

// WithContext ctx가 연결된 로그 Entry를 반환합니다.
func WithContext(ctx context.Context) *Entry {
	return logrus.WithContext(ctx)
}

// MaskSecret 인증 키, 토큰 등 민감한 값을 로그에 남길 수 있도록 가립니다.
//
//   - 빈 문자열: 그대로 반환
//   - 8자 이하: "***"
//   - 그 외: 앞 4자 + "***"
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}

	r := []rune(s)
	if len(r) <= 8 {
		return "***"
	}

	return string(r[:4]) + "***"
}

// ParseLevel "info", "debug" 같은 레벨 이름을 Level로 변환합니다.
func ParseLevel(name string) (Level, error) {
	return logrus.ParseLevel(name)
}
