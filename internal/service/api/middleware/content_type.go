package middleware

import (
	"mime"
	"strings"

	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/api/httputil"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
)

// ValidateContentType 본문이 있는 요청의 Content-Type이 expected인지 검사합니다.
// 본문이 없는 요청은 그대로 통과시킵니다.
func ValidateContentType(expected string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			contentType := req.Header.Get(echo.HeaderContentType)
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || !strings.EqualFold(mediaType, expected) {
				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"method":     req.Method,
					"path":       req.URL.Path,
					"expected":   expected,
					"actual":     contentType,
					"remote_ip":  c.RealIP(),
				}).Warn("지원하지 않는 Content-Type")

				return httputil.NewUnsupportedMediaTypeError(constants.ErrMsgUnsupportedMedia)
			}

			return next(c)
		}
	}
}
