package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
)

// defaultBytesIn Content-Length 헤더가 없을 때(Chunked 등) bytes_in 필드에 기록할 값입니다.
const defaultBytesIn = "0"

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// 기록되는 정보:
//   - 요청: IP, 메서드, URI, User-Agent, Content-Length
//   - 응답: 상태 코드, 응답 크기, Request ID
//   - 성능: 처리 시간
//
// app_key 등 민감한 쿼리 파라미터 값은 마스킹합니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			// panic이 발생해도 로그가 남도록 defer 사용
			defer func() {
				stop := time.Now()
				latency := stop.Sub(start)

				path := req.URL.Path
				if path == "" {
					path = "/"
				}

				bytesIn := req.Header.Get(echo.HeaderContentLength)
				if bytesIn == "" {
					bytesIn = defaultBytesIn
				}

				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"time_rfc3339": stop.Format(time.RFC3339),

					"method":   req.Method,
					"path":     path,
					"uri":      maskSensitiveQueryParams(req.RequestURI),
					"host":     req.Host,
					"protocol": req.Proto,

					"remote_ip":  c.RealIP(),
					"user_agent": req.UserAgent(),
					"referer":    req.Referer(),

					"status":    res.Status,
					"bytes_in":  bytesIn,
					"bytes_out": strconv.FormatInt(res.Size, 10),

					"latency":       strconv.FormatInt(latency.Microseconds(), 10),
					"latency_human": latency.String(),

					"request_id": res.Header().Get(echo.HeaderXRequestID),
				}).Info("HTTP 요청")
			}()

			// 에러는 여기서 처리해야 응답 상태 코드가 로그에 반영됩니다.
			if err := next(c); err != nil {
				c.Error(err)
			}

			return nil
		}
	}
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 마스킹합니다.
// 파싱에 실패하면 원본을 그대로 반환합니다.
//
//	입력: "/api/v1/campaigns?app_key=secret123456&dry_run=true"
//	출력: "/api/v1/campaigns?app_key=secr%2A%2A%2A&dry_run=true"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, applog.MaskSecret(q.Get(param)))
			masked = true
		}
	}

	if masked {
		u.RawQuery = q.Encode()
		return u.String()
	}

	return uri
}
