package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/pkg/validation"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

var (
	// 예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11
	telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

	// 캠페인 ID는 상태 파일명, Redis 키, API 경로에 그대로 쓰입니다.
	campaignIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)
)

// newValidator 커스텀 태그를 등록한 Validator를 생성합니다.
// 에러 메시지에는 Go 필드명 대신 JSON 키가 표시됩니다.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"cors_origin": func(fl validator.FieldLevel) bool {
			return validation.ValidateCORSOrigin(fl.Field().String()) == nil
		},
		"http_url": func(fl validator.FieldLevel) bool {
			return validation.ValidateHTTPURL(fl.Field().String()) == nil
		},
		"telegram_bot_token": func(fl validator.FieldLevel) bool {
			return telegramBotTokenRegex.MatchString(fl.Field().String())
		},
		"campaign_id": func(fl validator.FieldLevel) bool {
			return campaignIDRegex.MatchString(fl.Field().String())
		},
		"redis_url": func(fl validator.FieldLevel) bool {
			_, err := redis.ParseURL(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("'%s' 유효성 검사 함수 등록 실패: %v", tag, err))
		}
	}

	return v
}

// checkStruct 태그 규칙으로 s를 검증하고, 첫 번째 위반을 읽기 쉬운 도메인 에러로 바꿉니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "%s 유효성 검증에 실패했습니다", contextName)
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "unique":
		return apperrors.Newf(apperrors.InvalidInput, "%s의 %s 항목에 중복된 값이 존재합니다", contextName, fe.Field())
	case "cors_origin":
		return apperrors.Newf(apperrors.InvalidInput, "CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fe.Value())
	case "http_url":
		return apperrors.Newf(apperrors.InvalidInput, "%s의 %s는 http(s) 절대 주소여야 합니다: '%v'", contextName, fe.Field(), fe.Value())
	case "telegram_bot_token":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰 형식이 올바르지 않습니다 (형식: 123456:ABC-DEF...)")
	case "campaign_id":
		return apperrors.Newf(apperrors.InvalidInput, "캠페인 ID('%v')는 영문 소문자, 숫자, '-', '_'만 사용할 수 있습니다", fe.Value())
	case "redis_url":
		return apperrors.Newf(apperrors.InvalidInput, "Redis 주소 형식이 올바르지 않습니다: '%v' (예: redis://localhost:6379/0)", fe.Value())
	case "required_if", "required":
		return apperrors.Newf(apperrors.InvalidInput, "%s의 %s 값이 설정되지 않았습니다", contextName, fe.Field())
	case "file", "dir":
		return apperrors.Newf(apperrors.InvalidInput, "%s의 %s 경로를 찾을 수 없습니다: '%v'", contextName, fe.Field(), fe.Value())
	}

	if fe.Param() != "" {
		return apperrors.Newf(apperrors.InvalidInput, "%s의 설정이 올바르지 않습니다: %s=%v (조건: %s=%s)", contextName, fe.Field(), fe.Value(), fe.Tag(), fe.Param())
	}
	return apperrors.Newf(apperrors.InvalidInput, "%s의 설정이 올바르지 않습니다: %s=%v (조건: %s)", contextName, fe.Field(), fe.Value(), fe.Tag())
}

// checkUniqueField 슬라이스 원소의 fieldName 값이 서로 다른지 검사합니다.
func checkUniqueField(v *validator.Validate, data any, fieldName, contextName string) error {
	if err := v.Var(data, "unique="+fieldName); err != nil {
		return apperrors.Newf(apperrors.InvalidInput, "중복된 %s %s가 존재합니다", contextName, fieldName)
	}
	return nil
}
