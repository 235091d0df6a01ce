package contract

import (
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
)

// RunBy 캠페인 실행을 요청한 주체입니다.
type RunBy int

const (
	// RunByUnknown 초기화되지 않았거나 알 수 없는 상태입니다 (기본값).
	RunByUnknown RunBy = iota

	// RunByCLI 명령줄(post 명령)에서 직접 실행했습니다.
	RunByCLI

	// RunByScheduler Cron 스케줄에 의한 자동 실행입니다.
	RunByScheduler

	// RunByAPI REST API 요청에 의한 실행입니다.
	RunByAPI
)

func (r RunBy) IsValid() bool {
	switch r {
	case RunByCLI, RunByScheduler, RunByAPI:
		return true
	default:
		return false
	}
}

func (r RunBy) Validate() error {
	if !r.IsValid() {
		return apperrors.New(apperrors.InvalidInput, "지원하지 않는 실행 주체(RunBy)입니다")
	}
	return nil
}

func (r RunBy) String() string {
	switch r {
	case RunByCLI:
		return "CLI"
	case RunByScheduler:
		return "Scheduler"
	case RunByAPI:
		return "API"
	default:
		return "Unknown"
	}
}

// MarshalText 로그와 JSON 응답에 이름으로 기록되도록 합니다.
func (r RunBy) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
