package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/store-promoter/internal/service/api/middleware"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정입니다.
type HTTPServerConfig struct {
	Debug bool

	// EnableHSTS TLS로 서비스할 때만 켭니다.
	EnableHSTS bool

	AllowOrigins []string

	// RequestTimeout 0이면 DefaultRequestTimeout을 사용합니다. WebSocket 연결에는 적용되지 않습니다.
	RequestTimeout time.Duration

	// BodyLimit 요청 본문 최대 크기 (예: "128K"). 비어 있으면 DefaultMaxBodySize를 사용합니다.
	BodyLimit string

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// NewHTTPServer 미들웨어가 구성된 Echo 인스턴스를 생성합니다.
//
// 미들웨어 적용 순서:
//  1. PanicRecovery - 이후 단계의 panic을 복구
//  2. RequestID - 로그 추적용 ID 부여
//  3. Server 헤더 제거
//  4. HTTPLogger - 거부된 요청까지 기록
//  5. RateLimit - IP별 요청 제한
//  6. BodyLimit
//  7. Timeout - WebSocket 업그레이드 요청은 제외
//  8. CORS
//  9. Secure - 보안 헤더
//
// 서버 WriteTimeout은 WebSocket 연결을 끊으므로 설정하지 않고, 요청 처리 시간은 Timeout 미들웨어로 제한합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = constants.DefaultMaxBodySize
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Skipper: func(c echo.Context) bool {
			return websocket.IsWebSocketUpgrade(c.Request())
		},
		Timeout: timeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType, constants.HeaderAppKey},
	}))

	secure := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secure.HSTSMaxAge = 31536000
	}
	e.Use(middleware.SecureWithConfig(secure))

	return e
}
