package constants

import "time"

// 로깅용 컴포넌트 이름
const (
	ComponentService      = "api.service"
	ComponentHandler      = "api.handler"
	ComponentMiddleware   = "api.middleware"
	ComponentErrorHandler = "api.error_handler"
)

// 헤더 및 쿼리 파라미터
const (
	HeaderAppKey = "X-App-Key"

	QueryParamAppKey = "app_key"
	QueryParamDryRun = "dry_run"
)

// SensitiveQueryParams 요청 로그에 값을 마스킹해서 남길 쿼리 파라미터입니다.
var SensitiveQueryParams = []string{
	QueryParamAppKey,
	"api_key",
	"password",
	"token",
	"secret",
}

// http.Server 기본 타임아웃
const (
	DefaultRequestTimeout    = 60 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultMaxBodySize       = "128K"

	// ShutdownTimeout 서비스 종료 시 진행 중인 요청을 기다리는 최대 시간입니다.
	ShutdownTimeout = 5 * time.Second
)

const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)
