package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/store-promoter/internal/config"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/internal/responder"
	"github.com/darkkaiser/store-promoter/internal/service/contract"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/darkkaiser/store-promoter/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Option Notifier 설정 변경 함수입니다.
type Option func(*Notifier)

// WithChatbot 봇에게 온 메시지에 r의 응답을 보냅니다.
// greetingKeyword는 /start 명령에 사용할 입력이고, baseURL은 응답 속 상대 링크의 기준 주소입니다.
func WithChatbot(r Responder, greetingKeyword, baseURL string) Option {
	return func(n *Notifier) {
		n.responder = r
		n.greetingKeyword = greetingKeyword
		n.baseURL = baseURL
	}
}

// WithRateLimit 전송 속도를 변경합니다.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(n *Notifier) {
		n.limiter = rate.NewLimiter(limit, burst)
	}
}

// Notifier 관리자 채팅방으로 알림을 보내고, 챗봇이 켜져 있으면 문의 메시지에 응답합니다.
type Notifier struct {
	chatID int64
	client client

	// limiter 알림과 챗봇 응답이 함께 사용하는 전송 속도 제한입니다.
	limiter *rate.Limiter

	responder       Responder
	greetingKeyword string
	baseURL         string

	// chatSemaphore 문의 처리 고루틴의 동시 실행 수를 제한합니다.
	chatSemaphore chan struct{}

	running   bool
	runningMu sync.Mutex
}

var _ contract.NotificationSender = (*Notifier)(nil)

// New 봇 토큰으로 텔레그램 API 클라이언트를 초기화합니다. 토큰 확인(getMe)을 위해 네트워크 요청이 한 번 발생합니다.
func New(cfg config.TelegramConfig, debug bool, opts ...Option) (*Notifier, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": applog.MaskSecret(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug("텔레그램 봇 API 클라이언트를 초기화합니다")

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, &http.Client{Timeout: httpClientTimeout})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}
	botAPI.Debug = debug

	return newNotifier(&tgClient{BotAPI: botAPI}, cfg.ChatID, opts...), nil
}

func newNotifier(c client, chatID int64, opts ...Option) *Notifier {
	n := &Notifier{
		chatID:        chatID,
		client:        c,
		limiter:       rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
		chatSemaphore: make(chan struct{}, chatHandlerLimit),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify 관리자 채팅방으로 알림을 보냅니다. 전송 속도 제한을 기다리는 동안 ctx가 취소되면 에러를 반환합니다.
func (n *Notifier) Notify(ctx context.Context, notification contract.Notification) error {
	if err := notification.Validate(); err != nil {
		return err
	}

	return n.send(ctx, n.chatID, 0, formatNotification(notification))
}

// formatNotification 알림을 일반 텍스트로 만듭니다. 제목 줄 앞에 실패 여부를 표시합니다.
func formatNotification(notification contract.Notification) string {
	var header []string
	if notification.ErrorOccurred {
		header = append(header, "❗")
	} else {
		header = append(header, "✅")
	}
	if notification.Title != "" {
		header = append(header, notification.Title)
	}
	if notification.CampaignID != "" {
		header = append(header, fmt.Sprintf("[%s]", notification.CampaignID))
	}
	if notification.RunBy.IsValid() {
		header = append(header, fmt.Sprintf("(%s)", notification.RunBy))
	}

	return strings.Join(header, " ") + "\n\n" + strings.TrimSpace(notification.Message)
}

func (n *Notifier) send(ctx context.Context, chatID int64, replyTo int, text string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Timeout, "텔레그램 전송 대기 중 취소되었습니다")
	}

	msg := tgbotapi.NewMessage(chatID, strutil.Truncate(text, messageMaxLength))
	msg.DisableWebPagePreview = true
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}

	if _, err := n.client.Send(msg); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "텔레그램 메시지 전송에 실패했습니다")
	}
	return nil
}

// Start 챗봇이 켜져 있으면 Long Polling으로 메시지 수신을 시작합니다.
// 종료는 serviceStopCtx 취소로 요청하며, 정리가 끝나면 serviceStopWG.Done()이 호출됩니다.
func (n *Notifier) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	n.runningMu.Lock()
	defer n.runningMu.Unlock()

	if n.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("텔레그램 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	if n.responder == nil {
		serviceStopWG.Done()
		applog.WithComponent(component).Info("챗봇이 비활성화되어 있어 메시지 수신을 시작하지 않습니다")
		return nil
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollingTimeout
	updateC := n.client.GetUpdatesChan(updateConfig)
	n.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_username": n.client.GetSelf().UserName,
		"chat_id":      n.chatID,
	}).Info("텔레그램 챗봇 시작: Long Polling 활성화")

	go func() {
		defer serviceStopWG.Done()

		var handlers sync.WaitGroup
		n.receive(serviceStopCtx, updateC, &handlers)
		n.cleanup(&handlers)
	}()

	return nil
}

// receive 수신한 문의를 별도 고루틴으로 처리합니다. 동시 처리 수를 넘는 메시지는 버립니다.
func (n *Notifier) receive(ctx context.Context, updateC tgbotapi.UpdatesChannel, handlers *sync.WaitGroup) {
	for {
		select {
		case update, ok := <-updateC:
			if !ok {
				applog.WithComponent(component).Warn("Long Polling 채널 종료됨: 메시지 수신 루프를 종료합니다")
				return
			}
			if update.Message == nil || update.Message.From == nil || update.Message.From.IsBot {
				continue
			}

			select {
			case n.chatSemaphore <- struct{}{}:
				handlers.Add(1)
				go func(message *tgbotapi.Message) {
					defer handlers.Done()
					defer func() { <-n.chatSemaphore }()
					n.handleMessage(ctx, message)
				}(update.Message)

			case <-ctx.Done():
				return

			default:
				applog.WithComponentAndFields(component, applog.Fields{
					"chat_id":            update.Message.Chat.ID,
					"semaphore_capacity": cap(n.chatSemaphore),
				}).Warn("문의 처리 용량 초과로 메시지를 버렸습니다")
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleMessage /start와 /help에는 인사말을, 그 외에는 문의 응답을 보냅니다.
func (n *Notifier) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	input := message.Text
	if message.IsCommand() {
		switch message.Command() {
		case commandStart, commandHelp:
			input = n.greetingKeyword
		default:
			input = message.CommandArguments()
		}
	}

	reply := responder.PlainText(n.responder.Respond(input), n.baseURL)
	if strings.TrimSpace(reply) == "" {
		return
	}

	// 종료 중이라도 이미 받은 문의에는 답할 수 있도록 취소와 분리합니다.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := n.send(sendCtx, message.Chat.ID, message.MessageID, reply); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": message.Chat.ID,
		}).WithError(err).Warn("챗봇 응답 전송 실패")
	}
}

// cleanup 수신을 멈추고 처리 중인 응답이 끝날 때까지 기다립니다.
func (n *Notifier) cleanup(handlers *sync.WaitGroup) {
	n.client.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		handlers.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownTimeout + time.Second):
		applog.WithComponent(component).Error("종료 대기 시간 초과: 일부 챗봇 응답이 끝나지 않았습니다")
	}

	n.runningMu.Lock()
	n.running = false
	n.runningMu.Unlock()

	applog.WithComponent(component).Info("텔레그램 챗봇 종료 완료")
}
