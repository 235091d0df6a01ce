package fetcher

import (
	"time"
)

// Config Fetcher 체인 구성 옵션입니다.
type Config struct {
	Timeout       time.Duration
	UserAgent     string
	MaxRetries    int
	MinRetryDelay time.Duration
	MaxRetryDelay time.Duration

	// AllowedStatusCodes 성공으로 볼 상태 코드 목록 (비어 있으면 200)
	AllowedStatusCodes []int

	DisableLogging bool
}

// New 다음 순서(바깥쪽 → 안쪽)로 체인을 구성합니다.
//
//	Logging → Retry → StatusCode → HTTP
//
// StatusCode가 Retry보다 안쪽에 있어야 5xx 응답이 에러로 바뀌어 재시도 판단에 쓰입니다.
func New(cfg Config, opts ...Option) Fetcher {
	httpOpts := []Option{WithUserAgent(cfg.UserAgent)}
	if cfg.Timeout > 0 {
		httpOpts = append(httpOpts, WithTimeout(cfg.Timeout))
	}
	httpOpts = append(httpOpts, opts...)

	var f Fetcher = NewHTTPFetcher(httpOpts...)
	f = NewStatusCodeFetcher(f, cfg.AllowedStatusCodes...)
	f = NewRetryFetcher(f, cfg.MaxRetries, cfg.MinRetryDelay, cfg.MaxRetryDelay)
	if !cfg.DisableLogging {
		f = NewLoggingFetcher(f)
	}

	return f
}
