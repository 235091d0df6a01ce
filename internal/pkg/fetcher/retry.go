package fetcher

import (
	"context"
	"crypto/x509"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
)

const (
	maxAllowedRetries    = 10
	minAllowedRetryDelay = 100 * time.Millisecond
	defaultMaxRetryDelay = 30 * time.Second
)

// RetryFetcher 일시적인 실패에 대해 지수 백오프와 Full Jitter로 재시도하는 데코레이터입니다.
//
//   - 멱등 메서드(GET, HEAD, OPTIONS, PUT, DELETE)만 재시도합니다. POST는 한 번만 전송됩니다.
//   - 서버가 Retry-After를 주면 그 값을 따르되, maxRetryDelay를 넘으면 재시도하지 않습니다.
//   - 대기 중 컨텍스트가 취소되면 즉시 반환합니다.
type RetryFetcher struct {
	delegate Fetcher

	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher maxRetries는 0~10, minRetryDelay는 100ms 이상으로 보정됩니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay, maxRetryDelay time.Duration) *RetryFetcher {
	maxRetries = min(max(maxRetries, 0), maxAllowedRetries)

	if minRetryDelay < minAllowedRetryDelay {
		minRetryDelay = minAllowedRetryDelay
	}
	if maxRetryDelay <= 0 {
		maxRetryDelay = defaultMaxRetryDelay
	}
	if maxRetryDelay < minRetryDelay {
		maxRetryDelay = minRetryDelay
	}

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    maxRetries,
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
		sleep:         sleepContext,
	}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	retries := f.maxRetries
	if !isIdempotentMethod(req.Method) {
		retries = 0
	}
	if req.Body != nil && req.GetBody == nil && retries > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"method": req.Method,
			"url":    redactURL(req.URL),
		}).Warn("재시도 비활성화: 요청 본문을 다시 만들 수 없습니다 (GetBody nil)")

		retries = 0
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, apperrors.Wrap(err, apperrors.Internal, "재시도용 요청 본문 생성 실패")
			}
			req = req.Clone(req.Context())
			req.Body = body
		}

		resp, err := f.delegate.Do(req)
		if err == nil {
			return resp, nil
		}
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		if req.Context().Err() != nil || !isRetriable(err) {
			return nil, err
		}

		lastErr = err
		if attempt >= retries {
			break
		}

		delay, ok := f.nextDelay(attempt+1, err)
		if !ok {
			return nil, apperrors.Wrapf(err, apperrors.Unavailable, "서버가 요구한 재시도 대기 시간이 최대 허용치(%s)를 초과합니다", f.maxRetryDelay)
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"url":         redactURL(req.URL),
			"retry":       attempt + 1,
			"max_retries": retries,
			"delay":       delay.String(),
			"error":       err.Error(),
		}).Warn("재시도 대기 중: 일시적 오류로 요청을 다시 보냅니다")

		if err := f.sleep(req.Context(), delay); err != nil {
			return nil, err
		}
	}

	if retries == 0 {
		return nil, lastErr
	}
	return nil, apperrors.Wrapf(lastErr, apperrors.Unavailable, "최대 재시도 횟수(%d)를 초과했습니다", retries)
}

func (f *RetryFetcher) Close() error {
	return f.delegate.Close()
}

// nextDelay retry번째 재시도 전 대기 시간을 계산합니다.
// Retry-After가 최대 대기 시간을 넘으면 false를 반환합니다.
func (f *RetryFetcher) nextDelay(retry int, err error) (time.Duration, bool) {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.Header != nil {
		if d, ok := parseRetryAfter(statusErr.Header.Get("Retry-After")); ok {
			if d > f.maxRetryDelay {
				return 0, false
			}
			return d, true
		}
	}

	delay := f.minRetryDelay << (retry - 1)
	if delay <= 0 || delay > f.maxRetryDelay {
		delay = f.maxRetryDelay
	}

	delay = time.Duration(rand.Int64N(int64(delay) + 1))
	if delay < f.minRetryDelay {
		delay = f.minRetryDelay
	}

	return delay, true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isRetriable 일시적인 장애로 볼 수 있는 에러인지 판단합니다.
func isRetriable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg := urlErr.Err.Error()
		if strings.Contains(msg, "stopped after") || strings.Contains(msg, "unsupported protocol scheme") || strings.Contains(msg, "invalid control character") {
			return false
		}
	}

	var hostnameErr x509.HostnameError
	var authorityErr x509.UnknownAuthorityError
	var certErr x509.CertificateInvalidError
	if errors.As(err, &hostnameErr) || errors.As(err, &authorityErr) || errors.As(err, &certErr) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
			return false
		}
		return apperrors.Is(err, apperrors.Unavailable)
	}

	switch apperrors.UnderlyingType(err) {
	case apperrors.InvalidInput, apperrors.NotFound, apperrors.RemoteRejection, apperrors.ParsingFailed:
		return false
	}

	return true
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// parseRetryAfter 초 단위 정수 또는 HTTP-date 형식의 Retry-After 값을 해석합니다.
func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}

	if date, err := http.ParseTime(value); err == nil {
		return max(time.Until(date), 0), true
	}

	return 0, false
}
