package api

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/darkkaiser/store-promoter/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes 전역 라우트를 등록합니다.
//
//   - 시스템: /health, /version (인증 불필요)
//   - API 문서: /swagger/*
func RegisterRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}

// RegisterSite dir의 스토어프론트 정적 파일을 제공합니다.
// 라우트에 없는 경로만 파일로 처리되며, 텍스트 파일에는 UTF-8 charset을 명시합니다.
func RegisterSite(e *echo.Echo, dir string) {
	e.Use(utf8Charset)
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  dir,
		Index: "index.html",
	}))
}

var textExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".css":  true,
	".js":   true,
	".json": true,
	".txt":  true,
	".svg":  true,
}

// utf8Charset 정적 파일 응답 전에 Content-Type을 미리 지정합니다.
// http.ServeContent는 이미 지정된 Content-Type을 덮어쓰지 않습니다.
func utf8Charset(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := c.Request().URL.Path
		if strings.HasSuffix(p, "/") {
			p += "index.html"
		}

		ext := strings.ToLower(filepath.Ext(p))
		if textExtensions[ext] {
			if ct := mime.TypeByExtension(ext); ct != "" {
				if !strings.Contains(strings.ToLower(ct), "charset=") {
					ct += "; charset=utf-8"
				}
				c.Response().Header().Set(echo.HeaderContentType, ct)
			}
		}

		return next(c)
	}
}
