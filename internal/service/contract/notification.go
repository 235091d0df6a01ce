package contract

import (
	"context"
	"strings"
)

// Notification 관리자에게 보내는 알림 한 건입니다.
type Notification struct {
	CampaignID string
	RunBy      RunBy

	Title   string
	Message string

	// ErrorOccurred 실패 알림이면 true입니다. 수신 채널은 이를 보고 강조 표시합니다.
	ErrorOccurred bool
}

// Validate 본문이 비어 있으면 ErrMessageRequired를 반환합니다.
func (n Notification) Validate() error {
	if strings.TrimSpace(n.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}

// NotificationSender 관리자 알림 채널입니다. promoter와 scheduler는 이 인터페이스로만 알림을 보냅니다.
type NotificationSender interface {
	// Notify 알림을 전송합니다. 전송 실패는 에러로 반환하며, 호출자는 로그만 남기고 본 작업을 계속합니다.
	Notify(ctx context.Context, n Notification) error
}

// NopNotificationSender 알림 채널이 설정되지 않았을 때 사용하는 구현체입니다.
type NopNotificationSender struct{}

func (NopNotificationSender) Notify(context.Context, Notification) error { return nil }
