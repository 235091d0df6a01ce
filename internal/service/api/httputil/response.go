package httputil

import (
	"net/http"

	"github.com/darkkaiser/store-promoter/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

func newHTTPError(code int, message string) error {
	return echo.NewHTTPError(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// NewBadRequestError 400 Bad Request 에러를 생성합니다.
func NewBadRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewUnauthorizedError 401 Unauthorized 에러를 생성합니다.
func NewUnauthorizedError(message string) error {
	return newHTTPError(http.StatusUnauthorized, message)
}

// NewForbiddenError 403 Forbidden 에러를 생성합니다.
func NewForbiddenError(message string) error {
	return newHTTPError(http.StatusForbidden, message)
}

func NewUnsupportedMediaTypeError(message string) error {
	return newHTTPError(http.StatusUnsupportedMediaType, message)
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다.
func NewTooManyRequestsError(message string) error {
	return newHTTPError(http.StatusTooManyRequests, message)
}

// NewSuccessResponse 본문 없는 성공 응답(result_code=0)을 반환합니다.
func NewSuccessResponse(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse{
		ResultCode: 0,
		Message:    "성공",
	})
}
