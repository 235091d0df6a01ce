// Package cronx 캠페인 스케줄에 사용하는 Cron 표현식의 파싱과 검증을 한곳에 모아 둡니다.
package cronx

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// parser 초 단위를 포함한 6필드 형식과 Descriptor(@daily, @every 1h 등)를 해석합니다.
//
//   - 필드 순서: [초] [분] [시] [일] [월] [요일]
//   - "0 0 9 * * *"  : 매일 09:00:00
//   - "@every 6h"    : 6시간마다
var parser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// StandardParser 스케줄러와 설정 검증이 공유하는 파서를 반환합니다.
func StandardParser() cron.Parser {
	return parser
}

// Parse spec을 해석하여 cron.Schedule을 반환합니다. 앞뒤 공백은 무시합니다.
func Parse(spec string) (cron.Schedule, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return nil, fmt.Errorf("Cron 표현식이 비어 있습니다")
	}

	schedule, err := parser.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", trimmed, err)
	}

	return schedule, nil
}

// Validate spec이 6필드 형식 또는 Descriptor로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	_, err := Parse(spec)
	return err
}
