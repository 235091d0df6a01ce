package fetcher

import (
	"net/http"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "store-promoter/1.0 (+https://iraq-ninja-store.arabsad.com)"
)

// HTTPFetcher net/http 클라이언트를 감싼 체인의 가장 안쪽 구현체입니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Option HTTPFetcher 설정 변경 함수입니다.
type Option func(*HTTPFetcher)

// WithTimeout 요청 전체(연결부터 본문 수신까지)의 제한 시간을 설정합니다. 0 이하는 무제한입니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		h.client.Timeout = timeout
	}
}

// WithUserAgent 요청에 User-Agent가 없을 때 사용할 값을 설정합니다.
func WithUserAgent(ua string) Option {
	return func(h *HTTPFetcher) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithTransport 테스트 등에서 RoundTripper를 교체합니다.
func WithTransport(rt http.RoundTripper) Option {
	return func(h *HTTPFetcher) {
		h.client.Transport = rt
	}
}

// NewHTTPFetcher 기본 제한 시간 30초의 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	h := &HTTPFetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Do User-Agent가 비어 있으면 기본값을 채운 복제본으로 요청합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", h.userAgent)
	}

	return h.client.Do(req)
}

// Close 유휴 커넥션을 정리합니다.
func (h *HTTPFetcher) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
