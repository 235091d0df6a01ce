package config

import (
	"fmt"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

// validate 로드 직후 각 설정 영역의 정합성을 검사합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	sections := []struct {
		name  string
		value any
	}{
		{"log", c.Log},
		{"http_retry", c.HTTPRetry},
		{"publisher", c.Publisher},
		{"message", c.Message},
		{"state", c.State},
		{"notifiers.telegram", c.Notifiers.Telegram},
	}
	for _, s := range sections {
		if err := checkStruct(v, s.value, s.name); err != nil {
			return err
		}
	}

	if err := c.validateCampaigns(v); err != nil {
		return err
	}

	if err := checkStruct(v, c.Chatbot, "chatbot"); err != nil {
		return err
	}

	if c.API.Enabled {
		if err := c.API.validate(v); err != nil {
			return err
		}
	}

	return nil
}

func (c *AppConfig) validateCampaigns(v *validator.Validate) error {
	if err := checkUniqueField(v, c.Campaigns, "ID", "캠페인"); err != nil {
		return err
	}

	for _, campaign := range c.Campaigns {
		name := fmt.Sprintf("campaigns['%s']", campaign.ID)
		if err := checkStruct(v, campaign, name); err != nil {
			return err
		}

		if campaign.Scheduler.Runnable {
			if err := cronx.Validate(campaign.Scheduler.TimeSpec); err != nil {
				return apperrors.Wrapf(err, apperrors.InvalidInput, "%s의 스케줄(time_spec) 설정이 유효하지 않습니다", name)
			}
		}
	}

	return nil
}

func (c *APIConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "api"); err != nil {
		return err
	}

	for _, origin := range c.CORS.AllowOrigins {
		if origin == "*" && len(c.CORS.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 Origin과 함께 사용할 수 없습니다")
		}
	}

	return nil
}

// VerifyRecommendations 실행을 막지는 않지만 운영상 주의가 필요한 설정을 경고 문구로 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.Enabled {
		if c.API.ListenPort < 1024 {
			warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(%d)를 사용합니다. 관리자 권한이 필요할 수 있습니다", c.API.ListenPort))
		}
		if c.API.AppKey == "" {
			warnings = append(warnings, "api.app_key가 비어 있어 캠페인 실행 API가 비활성화됩니다")
		}
	}

	if c.State.Backend == StateBackendMemory {
		warnings = append(warnings, "회전 상태를 메모리에만 보관합니다. 재시작하면 첫 상품부터 다시 게시합니다")
	}

	hasSchedule := false
	for _, campaign := range c.Campaigns {
		if campaign.Scheduler.Runnable {
			hasSchedule = true
			break
		}
	}
	if len(c.Campaigns) > 0 && !hasSchedule {
		warnings = append(warnings, "스케줄이 활성화된 캠페인이 없습니다")
	}

	return warnings
}
