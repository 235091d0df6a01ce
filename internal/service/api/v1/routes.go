package v1

import (
	"github.com/darkkaiser/store-promoter/internal/service/api/middleware"
	"github.com/darkkaiser/store-promoter/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes /api/v1 라우트를 등록합니다.
//
//   - 챗봇: POST /chat, GET /chat/ws (인증 불필요)
//   - 캠페인: GET /campaigns, POST /campaigns/:id/run (X-App-Key 필요)
func RegisterRoutes(e *echo.Echo, h *handler.Handler, appKey string) {
	v1Group := e.Group("/api/v1")

	if h.ChatEnabled() {
		v1Group.POST("/chat", h.ChatHandler, middleware.ValidateContentType(echo.MIMEApplicationJSON))
		v1Group.GET("/chat/ws", h.ChatWebSocketHandler)
	}

	campaigns := v1Group.Group("/campaigns", middleware.RequireAppKey(appKey))
	campaigns.GET("", h.ListCampaignsHandler)
	campaigns.POST("/:id/run", h.RunCampaignHandler)
}
