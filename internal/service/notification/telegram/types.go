// Package telegram 관리자 알림 전송과 고객 문의 자동 응답(챗봇)을 텔레그램 봇으로 제공합니다.
package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// component 텔레그램 Notifier 로깅용 컴포넌트 이름
const component = "notification.telegram"

const (
	// messageMaxLength 텔레그램 공식 제한은 4096자이며, 여유를 두고 3900자에서 자릅니다.
	messageMaxLength = 3900

	// httpClientTimeout 봇 API 호출 제한 시간입니다. Long Polling 대기(60초)보다 길어야 합니다.
	httpClientTimeout = 70 * time.Second

	// pollingTimeout getUpdates Long Polling 대기 시간(초)입니다.
	pollingTimeout = 60

	// chatHandlerLimit 동시에 처리하는 문의 메시지 수입니다. 초과분은 버립니다.
	chatHandlerLimit = 10

	// shutdownTimeout 종료 시 처리 중인 응답을 기다리는 최대 시간입니다.
	shutdownTimeout = 10 * time.Second

	// 텔레그램 API 정책(채팅방당 초당 1회 내외)에 맞춘 전송 속도입니다.
	defaultRateLimit = 1
	defaultRateBurst = 5
)

// 봇 명령어
const (
	commandStart = "start"
	commandHelp  = "help"
)

// client 텔레그램 봇 API와의 통신을 추상화한 인터페이스입니다.
type client interface {
	GetSelf() tgbotapi.User

	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)

	StopReceivingUpdates()
}

// tgClient tgbotapi.BotAPI를 client 인터페이스에 맞춥니다.
type tgClient struct {
	*tgbotapi.BotAPI
}

func (c *tgClient) GetSelf() tgbotapi.User {
	return c.Self
}

// Responder 고객 문의에 대한 응답 문구(HTML 조각)를 만듭니다. *responder.Responder가 만족합니다.
type Responder interface {
	Respond(input string) string
}
