package httputil

import (
	"net/http"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/api/model/response"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 핸들러에서 반환된 에러를 response.ErrorResponse 형식의 JSON으로 변환합니다.
// echo.HTTPError는 그 상태 코드를, AppError는 StatusCode로 매핑한 상태 코드를 사용하며
// 5xx는 Error, 4xx는 Warn 레벨로 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := resolve(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	if c.Response().Committed {
		return
	}

	// HEAD 요청은 본문 없이 상태 코드만 반환
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

func resolve(err error) (int, string) {
	if he, ok := err.(*echo.HTTPError); ok {
		message := http.StatusText(he.Code)
		switch m := he.Message.(type) {
		case string:
			message = m
		case response.ErrorResponse:
			message = m.Message
		}
		if he.Code == http.StatusNotFound {
			message = constants.ErrMsgNotFound
		}
		return he.Code, message
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		code := StatusCode(apperrors.UnderlyingType(err))
		if code == http.StatusInternalServerError {
			return code, constants.ErrMsgInternalServer
		}
		return code, appErr.Message()
	}

	return http.StatusInternalServerError, constants.ErrMsgInternalServer
}

// StatusCode 에러 종류에 대응하는 HTTP 상태 코드를 반환합니다.
func StatusCode(t apperrors.ErrorType) int {
	switch t {
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.MissingCredential:
		return http.StatusServiceUnavailable
	case apperrors.RemoteRejection, apperrors.Unavailable:
		return http.StatusBadGateway
	case apperrors.Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
