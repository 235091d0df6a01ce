package system

import (
	"context"
	"net/http"
	"time"

	"github.com/darkkaiser/store-promoter/internal/pkg/version"
	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/api/model/system"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
)

// healthCheckTimeout 의존성 하나의 상태 확인에 허용하는 시간입니다.
const healthCheckTimeout = 2 * time.Second

// HealthChecker 외부 의존성(상태 저장소 등)의 상태를 확인합니다.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler 시스템 엔드포인트(/health, /version) 핸들러입니다.
type Handler struct {
	checkers map[string]HealthChecker

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler checkers의 키는 응답의 dependencies 항목 이름으로 사용됩니다.
func NewHandler(checkers map[string]HealthChecker, buildInfo version.Info) *Handler {
	return &Handler{
		checkers: checkers,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 상태 확인
// @Description 서버와 의존성(상태 저장소 등)의 상태를 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	status := constants.HealthStatusHealthy
	deps := make(map[string]system.DependencyStatus, len(h.checkers))

	for name, checker := range h.checkers {
		dep := h.check(c.Request().Context(), checker)
		if dep.Status != constants.HealthStatusHealthy {
			status = constants.HealthStatusUnhealthy
		}
		deps[name] = dep
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       status,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

func (h *Handler) check(ctx context.Context, checker HealthChecker) system.DependencyStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := checker.Health(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return system.DependencyStatus{
			Status:    constants.HealthStatusUnhealthy,
			LatencyMs: latency,
			Message:   err.Error(),
		}
	}

	return system.DependencyStatus{
		Status:    constants.HealthStatusHealthy,
		LatencyMs: latency,
		Message:   "정상 작동 중",
	}
}

// VersionHandler godoc
// @Summary 버전 정보
// @Description 빌드 버전과 커밋, Go 런타임 정보를 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:    h.buildInfo.Version,
		Commit:     h.buildInfo.Commit,
		BuildDate:  h.buildInfo.BuildDate,
		GoVersion:  h.buildInfo.GoVersion,
		DirtyBuild: h.buildInfo.DirtyBuild,
	})
}
