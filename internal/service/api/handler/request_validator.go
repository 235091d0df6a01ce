package handler

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// 에러 메시지에는 Go 필드명 대신 korean 태그(없으면 필드명)를 사용합니다.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			return fld.Name
		})
	})

	return validate
}

// ValidateRequest 요청 구조체의 validate 태그를 검사합니다.
func ValidateRequest(req any) error {
	return getValidator().Struct(req)
}

// FormatValidationError 첫 번째 검증 실패를 사용자에게 보여줄 문장으로 변환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := fieldErr.Field()
	isString := fieldErr.Kind() == reflect.String

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", fieldName)
	case "min":
		if isString {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최소 %s 이상이어야 합니다", fieldName, fieldErr.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", fieldName, fieldErr.Param())
	default:
		return fmt.Sprintf("%s 검증 실패: %s", fieldName, fieldErr.Tag())
	}
}
