package handler

import (
	"strings"
	"time"

	"github.com/darkkaiser/store-promoter/internal/service/api/v1/model"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = 30 * time.Second
	wsMaxMessageSize = 2048
)

// ChatWebSocketHandler godoc
// @Summary 챗봇 WebSocket
// @Description 텍스트 프레임 하나가 질문 하나입니다. 설정된 입력 지연(typing_delay) 후 ChatResponse JSON 프레임으로 답합니다.
// @Description 빈 문장은 무시합니다.
// @Tags Chat
// @Success 101 {object} model.ChatResponse
// @Router /api/v1/chat/ws [get]
func (h *Handler) ChatWebSocketHandler(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade가 이미 에러 응답을 작성했습니다.
		h.log(c).WithError(err).Warn("WebSocket 업그레이드 실패")
		return nil
	}
	defer conn.Close()

	log := h.log(c)
	log.Debug("WebSocket 연결됨")

	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.WithError(err).Warn("WebSocket 연결이 비정상적으로 종료되었습니다")
			}
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		input := strings.TrimSpace(string(data))
		if input == "" {
			continue
		}

		if !h.typing(c.Request().Context().Done()) {
			break
		}

		answer := h.chatbot.Answer(input)

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(model.NewChatResponse(answer)); err != nil {
			log.WithError(err).Warn("WebSocket 응답 전송 실패")
			break
		}

		log.WithFields(applog.Fields{"kind": answer.Kind}).Debug("WebSocket 챗봇 응답")
	}

	log.Debug("WebSocket 연결 종료")

	return nil
}

// typing 입력 지연만큼 기다립니다. 요청 컨텍스트가 먼저 끝나면 false를 반환합니다.
func (h *Handler) typing(done <-chan struct{}) bool {
	if h.typingDelay <= 0 {
		return true
	}

	timer := time.NewTimer(h.typingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-done:
		return false
	}
}

// keepAlive 주기적으로 Ping을 보냅니다. WriteControl은 다른 쓰기와 동시에 호출해도 안전합니다.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
