package middleware

import (
	"crypto/subtle"

	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/api/httputil"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
)

// RequireAppKey X-App-Key 헤더가 appKey와 일치하는 요청만 통과시키는 미들웨어를 반환합니다.
//
// appKey가 비어 있으면 해당 라우트 전체가 비활성화되어 항상 403을 반환합니다.
// 쿼리 파라미터로 전달된 키는 로그에 노출될 수 있으므로 받지 않습니다.
func RequireAppKey(appKey string) echo.MiddlewareFunc {
	expected := []byte(appKey)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(expected) == 0 {
				return httputil.NewForbiddenError(constants.ErrMsgCampaignAPIOff)
			}

			given := c.Request().Header.Get(constants.HeaderAppKey)
			if given == "" {
				if c.QueryParam(constants.QueryParamAppKey) != "" {
					applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
						"method":    c.Request().Method,
						"path":      c.Path(),
						"remote_ip": c.RealIP(),
					}).Warn("보안 경고: 쿼리 파라미터로 App Key가 전달되어 무시합니다 (X-App-Key 헤더 사용)")
				}

				return httputil.NewUnauthorizedError(constants.ErrMsgAppKeyRequired)
			}

			if subtle.ConstantTimeCompare([]byte(given), expected) != 1 {
				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"method":    c.Request().Method,
					"path":      c.Path(),
					"remote_ip": c.RealIP(),
					"app_key":   applog.MaskSecret(given),
				}).Warn("인증 실패: App Key 불일치")

				return httputil.NewUnauthorizedError(constants.ErrMsgAppKeyInvalid)
			}

			return next(c)
		}
	}
}
