package system

// DependencyStatus 외부 의존성 하나의 상태입니다.
type DependencyStatus struct {
	Status string `json:"status" example:"healthy"`

	// 상태 확인에 걸린 시간(밀리초)
	LatencyMs int64 `json:"latency_ms,omitempty" example:"5"`

	Message string `json:"message,omitempty" example:"정상 작동 중"`
}

// HealthResponse /health 응답입니다.
type HealthResponse struct {
	// 전체 상태 (healthy, unhealthy)
	Status string `json:"status" example:"healthy"`

	// 서버 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`

	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// VersionResponse /version 응답입니다.
type VersionResponse struct {
	Version    string `json:"version" example:"v1.2.0"`
	Commit     string `json:"commit" example:"f25b8bf"`
	BuildDate  string `json:"build_date" example:"2026-10-01T14:00:00Z"`
	GoVersion  string `json:"go_version" example:"go1.24.0"`
	DirtyBuild bool   `json:"dirty_build" example:"false"`
}
