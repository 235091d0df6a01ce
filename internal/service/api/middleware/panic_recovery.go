package middleware

import (
	"fmt"
	"runtime"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 panic을 복구하고 스택 트레이스와 함께 기록한 뒤
// Echo 에러 핸들러로 넘기는 미들웨어를 반환합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
					}

					stack := make([]byte, stackBufferSize)
					length := runtime.Stack(stack, false)

					fields := applog.Fields{
						"error": err,
						"stack": string(stack[:length]),
					}
					if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
						fields["request_id"] = requestID
					}

					applog.WithComponentAndFields(constants.ComponentMiddleware, fields).Error("PANIC RECOVERED")

					c.Error(err)
				}
			}()

			return next(c)
		}
	}
}
