package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/darkkaiser/store-promoter/internal/responder"
	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/promoter"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Chatbot 고객 문장에 대한 구조화된 응답을 만듭니다.
type Chatbot interface {
	Answer(input string) responder.Answer
}

// CampaignService 캠페인 조회와 수동 실행을 담당합니다.
type CampaignService interface {
	Run(ctx context.Context, id string, opts promoter.RunOptions) (*promoter.Result, error)
	Campaigns(ctx context.Context) []promoter.CampaignStatus
}

// Options Handler 구성 값입니다.
type Options struct {
	// TypingDelay WebSocket 응답 전 대기 시간입니다. 상담원이 입력 중인 것처럼 보이게 합니다.
	TypingDelay time.Duration

	// AllowOrigins WebSocket 연결을 허용할 Origin 목록입니다. "*"는 모두 허용합니다.
	AllowOrigins []string
}

// Handler /api/v1 엔드포인트 핸들러입니다.
type Handler struct {
	chatbot   Chatbot
	campaigns CampaignService

	typingDelay time.Duration
	upgrader    websocket.Upgrader
}

// NewHandler chatbot이 nil이면 챗봇 엔드포인트는 등록되지 않습니다.
func NewHandler(chatbot Chatbot, campaigns CampaignService, opts Options) *Handler {
	if campaigns == nil {
		panic(constants.PanicMsgCampaignServiceRequired)
	}

	return &Handler{
		chatbot:   chatbot,
		campaigns: campaigns,

		typingDelay: opts.TypingDelay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(opts.AllowOrigins),
		},
	}
}

// ChatEnabled 챗봇 엔드포인트를 등록할지 여부입니다.
func (h *Handler) ChatEnabled() bool {
	return h.chatbot != nil
}

// checkOrigin Origin 헤더가 없는 요청(비브라우저 클라이언트)은 허용합니다.
func checkOrigin(allowOrigins []string) func(r *http.Request) bool {
	allowAll := len(allowOrigins) == 0 || slices.Contains(allowOrigins, "*")

	return func(r *http.Request) bool {
		if allowAll {
			return true
		}

		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return slices.Contains(allowOrigins, origin)
	}
}

func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"remote_ip":  c.RealIP(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
