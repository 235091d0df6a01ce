package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var _ client = (*mockBot)(nil)

// mockBot 텔레그램 봇 API(client)의 Mock 구현체입니다.
type mockBot struct {
	mock.Mock
}

func newMockBot(t *testing.T) *mockBot {
	m := &mockBot{}
	m.Test(t)
	return m
}

func (m *mockBot) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	args := m.Called(config)
	switch c := args.Get(0).(type) {
	case chan tgbotapi.Update:
		return c
	case tgbotapi.UpdatesChannel:
		return c
	default:
		return nil
	}
}

func (m *mockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)

	var msg tgbotapi.Message
	if args.Get(0) != nil {
		msg = args.Get(0).(tgbotapi.Message)
	}
	return msg, args.Error(1)
}

func (m *mockBot) StopReceivingUpdates() {
	m.Called()
}

func (m *mockBot) GetSelf() tgbotapi.User {
	args := m.Called()
	if args.Get(0) != nil {
		return args.Get(0).(tgbotapi.User)
	}
	return tgbotapi.User{}
}

type stubResponder struct{}

// Respond 입력을 그대로 돌려주되, 인사 키워드에는 링크가 포함된 HTML을 반환합니다.
func (stubResponder) Respond(input string) string {
	switch input {
	case "مرحبا":
		return `مرحباً بك! <a href="/products/x.html">شاهد</a>`
	case "":
		return "default"
	default:
		return "echo: " + input
	}
}
