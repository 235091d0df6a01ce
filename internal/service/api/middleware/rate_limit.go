package middleware

import (
	"fmt"
	"sync"

	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/api/httputil"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// maxIPRateLimiters 메모리에 유지할 최대 IP 수입니다. 넘으면 임의의 항목 하나를 제거합니다.
	maxIPRateLimiters = 10000

	retryAfterSeconds = "1"
)

// ipRateLimiter IP 주소별 Token Bucket을 관리합니다.
type ipRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(requestsPerSecond float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limiters[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// 다른 고루틴이 먼저 생성했을 수 있음
	if limiter, exists = i.limiters[ip]; exists {
		return limiter
	}

	if len(i.limiters) >= maxIPRateLimiters {
		for oldIP := range i.limiters {
			delete(i.limiters, oldIP)
			break
		}
	}

	limiter = rate.NewLimiter(i.rate, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

// RateLimit 클라이언트 IP별 요청 수를 제한하는 미들웨어를 반환합니다.
// 제한을 넘으면 Retry-After 헤더와 함께 429 Too Many Requests를 반환합니다.
//
// requestsPerSecond 또는 burst가 0 이하이면 panic이 발생합니다.
func RateLimit(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(fmt.Sprintf("RateLimit: requestsPerSecond는 양수여야 합니다 (현재값: %v)", requestsPerSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf("RateLimit: burst는 양수여야 합니다 (현재값: %d)", burst))
	}

	limiter := newIPRateLimiter(requestsPerSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn("요청 차단: 속도 제한(Rate Limit)을 초과하였습니다")

				c.Response().Header().Set("Retry-After", retryAfterSeconds)

				return httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)
			}

			return next(c)
		}
	}
}
