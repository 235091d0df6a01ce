package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
)

// maxBodySnippetBytes HTTPStatusError에 담을 응답 본문의 최대 크기입니다.
const maxBodySnippetBytes = 4 * 1024

// HTTPStatusError 허용되지 않은 상태 코드의 응답 정보를 담습니다.
//
// Cause에는 상태 코드로 분류된 AppError가 들어 있어 apperrors.Is로 종류를 판별할 수 있습니다.
//
//	var statusErr *fetcher.HTTPStatusError
//	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusForbidden { ... }
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string      // 민감 정보가 가려진 URL
	Header      http.Header // 인증 헤더가 가려진 응답 헤더
	BodySnippet string

	Cause error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += " URL: " + e.URL
	}
	if e.BodySnippet != "" {
		msg += ", Body: " + e.BodySnippet
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}

	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// classifyStatus 상태 코드를 에러 종류로 분류합니다.
//   - 5xx, 429, 408: Unavailable (재시도 대상)
//   - 404: NotFound
//   - 그 외 4xx: RemoteRejection
func classifyStatus(code int) apperrors.ErrorType {
	switch {
	case code >= 500, code == http.StatusTooManyRequests, code == http.StatusRequestTimeout:
		return apperrors.Unavailable
	case code == http.StatusNotFound:
		return apperrors.NotFound
	default:
		return apperrors.RemoteRejection
	}
}

// CheckResponseStatus resp의 상태 코드가 allowed(비어 있으면 200) 중 하나가 아니면 HTTPStatusError를 반환합니다.
// 에러를 만들 때 본문 일부를 읽어 소비하므로, 실패 시 호출자는 Body를 닫기만 하면 됩니다.
func CheckResponseStatus(resp *http.Response, allowed ...int) error {
	if len(allowed) == 0 {
		allowed = []int{http.StatusOK}
	}
	if slices.Contains(allowed, resp.StatusCode) {
		return nil
	}

	var snippet string
	if resp.Body != nil {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippetBytes))
		snippet = strings.ToValidUTF8(string(data), "")
	}

	var u string
	if resp.Request != nil {
		u = redactURL(resp.Request.URL)
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         u,
		Header:      redactHeaders(resp.Header),
		BodySnippet: snippet,
		Cause:       apperrors.Newf(classifyStatus(resp.StatusCode), "허용되지 않은 HTTP 상태 코드입니다 (status=%d)", resp.StatusCode),
	}
}

// StatusCodeFetcher 허용된 상태 코드가 아닌 응답을 HTTPStatusError로 바꾸는 데코레이터입니다.
// 실패한 응답의 Body는 이 안에서 정리합니다.
type StatusCodeFetcher struct {
	delegate Fetcher
	allowed  []int
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher allowed가 비어 있으면 200 OK만 허용합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowed ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate: delegate,
		allowed:  allowed,
	}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if statusErr := CheckResponseStatus(resp, f.allowed...); statusErr != nil {
		drainAndCloseBody(resp.Body)
		return nil, statusErr
	}

	return resp, nil
}

func (f *StatusCodeFetcher) Close() error {
	return f.delegate.Close()
}
