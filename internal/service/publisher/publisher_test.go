package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/darkkaiser/store-promoter/internal/config"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/internal/pkg/fetcher"
	"github.com/darkkaiser/store-promoter/pkg/oauth1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCredentials = config.Credentials{
	APIKey:            "consumer-key",
	APISecret:         "consumer-secret",
	AccessToken:       "access-token",
	AccessTokenSecret: "token-secret",
}

var fixedTime = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, version, endpoint string, f fetcher.Fetcher) *Client {
	t.Helper()

	c, err := New(config.PublisherConfig{
		APIVersion: version,
		Endpoint:   endpoint,
		StatusURL:  "https://twitter.com/i/web/status/",
		Timeout:    5 * time.Second,
	}, testCredentials, f,
		WithSignerOptions(
			oauth1.WithNonce(func() string { return "fixednonce" }),
			oauth1.WithClock(func() time.Time { return fixedTime }),
		),
		WithClock(func() time.Time { return fixedTime }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

// parseAuthorization "OAuth k="v", ..." 헤더를 디코딩된 맵으로 바꿉니다.
func parseAuthorization(t *testing.T, header string) map[string]string {
	t.Helper()

	require.True(t, strings.HasPrefix(header, "OAuth "))
	params := make(map[string]string)
	for _, part := range strings.Split(strings.TrimPrefix(header, "OAuth "), ", ") {
		k, v, ok := strings.Cut(part, "=")
		require.True(t, ok, part)
		decoded, err := url.PathUnescape(strings.Trim(v, `"`))
		require.NoError(t, err)
		params[k] = decoded
	}
	return params
}

// verifySignature 서버 입장에서 서명을 다시 계산해 비교합니다.
func verifySignature(t *testing.T, r *http.Request, endpoint string, payload map[string]string) {
	t.Helper()

	params := parseAuthorization(t, r.Header.Get("Authorization"))
	got := params["oauth_signature"]
	delete(params, "oauth_signature")
	for k, v := range payload {
		params[k] = v
	}

	assert.Equal(t, "consumer-key", params["oauth_consumer_key"])
	assert.Equal(t, "fixednonce", params["oauth_nonce"])
	assert.Equal(t, "1.0", params["oauth_version"])
	assert.Equal(t, oauth1.Sign(http.MethodPost, endpoint, params, "consumer-secret", "token-secret"), got)
}

func TestNew_MissingCredentials(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits.Add(1) }))
	defer srv.Close()

	creds := testCredentials
	creds.APISecret = ""
	creds.AccessTokenSecret = "   "

	_, err := New(config.PublisherConfig{Endpoint: srv.URL, StatusURL: "https://x/"}, creds, nil)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.MissingCredential))
	assert.Contains(t, err.Error(), config.EnvAPISecret)
	assert.Contains(t, err.Error(), config.EnvAccessTokenSecret)
	assert.NotContains(t, err.Error(), config.EnvAPIKey+",")
	assert.Zero(t, hits.Load(), "자격 증명이 없으면 네트워크 요청이 없어야 합니다")
}

func TestNew_DefaultEndpoint(t *testing.T) {
	v1, err := New(config.PublisherConfig{}, testCredentials, fetcher.NewHTTPFetcher())
	require.NoError(t, err)
	assert.Equal(t, EndpointV1, v1.endpoint)
	assert.Equal(t, config.PublisherAPIv1, v1.version)

	v2, err := New(config.PublisherConfig{APIVersion: config.PublisherAPIv2}, testCredentials, fetcher.NewHTTPFetcher())
	require.NoError(t, err)
	assert.Equal(t, EndpointV2, v2.endpoint)
}

func TestPost_V1(t *testing.T) {
	const text = "ميزان الطعام\n\nhttps://example.com/p.html\n\n#العراق #بغداد"

	var endpoint string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "status="+oauth1.PercentEncode(text), string(raw))

		form, err := url.ParseQuery(string(raw))
		require.NoError(t, err)
		assert.Equal(t, text, form.Get("status"))

		verifySignature(t, r, endpoint, map[string]string{"status": text})

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":1850000000000000001,"id_str":"1850000000000000001","text":"..."}`)
	}))
	defer srv.Close()
	endpoint = srv.URL + "/1.1/statuses/update.json"

	c := newTestClient(t, config.PublisherAPIv1, endpoint, fetcher.NewHTTPFetcher())

	receipt, err := c.Post(context.Background(), text)

	require.NoError(t, err)
	assert.Equal(t, "1850000000000000001", receipt.ID)
	assert.Equal(t, "https://twitter.com/i/web/status/1850000000000000001", receipt.URL)
	assert.Equal(t, fixedTime, receipt.PostedAt)
}

func TestPost_V2(t *testing.T) {
	var endpoint string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a & b <c>", body.Text)

		verifySignature(t, r, endpoint, nil)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":"42","text":"a & b <c>"}}`)
	}))
	defer srv.Close()
	endpoint = srv.URL + "/2/tweets"

	c := newTestClient(t, config.PublisherAPIv2, endpoint, fetcher.NewHTTPFetcher())

	receipt, err := c.Post(context.Background(), "a & b <c>")

	require.NoError(t, err)
	assert.Equal(t, "42", receipt.ID)
	assert.Equal(t, "https://twitter.com/i/web/status/42", receipt.URL)
}

func TestPost_V2_RequiresCreated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"id":"42"}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, config.PublisherAPIv2, srv.URL, fetcher.NewHTTPFetcher())

	_, err := c.Post(context.Background(), "hi")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.RemoteRejection))
}

func TestPost_MissingIDIsNotFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	}))
	defer srv.Close()

	c := newTestClient(t, config.PublisherAPIv1, srv.URL, fetcher.NewHTTPFetcher())

	receipt, err := c.Post(context.Background(), "hi")

	require.NoError(t, err)
	assert.Empty(t, receipt.ID)
	assert.Empty(t, receipt.URL)
}

func TestPost_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "권한 없음", status: http.StatusForbidden},
		{name: "인증 실패", status: http.StatusUnauthorized},
		{name: "서버 오류", status: http.StatusInternalServerError},
		{name: "요청 제한", status: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"errors":[{"code":187,"message":"Status is a duplicate."}]}`)
			}))
			defer srv.Close()

			// 기본 체인(nil)을 사용해도 POST는 재시도되지 않아야 합니다.
			c := newTestClient(t, config.PublisherAPIv1, srv.URL, nil)

			_, err := c.Post(context.Background(), "hi")

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.RemoteRejection))

			var statusErr *fetcher.HTTPStatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Contains(t, statusErr.BodySnippet, "duplicate")

			assert.Equal(t, int32(1), hits.Load())
		})
	}
}

func TestPost_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	c := newTestClient(t, config.PublisherAPIv1, endpoint, fetcher.NewHTTPFetcher())

	_, err := c.Post(context.Background(), "hi")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
}

func TestPost_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { <-release }))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, config.PublisherAPIv1, srv.URL, fetcher.NewHTTPFetcher())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Post(ctx, "hi")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Timeout))
}

func TestExtractID(t *testing.T) {
	id, ok := extractID([]byte(`{"id_str":"7"}`), "id_str")
	assert.True(t, ok)
	assert.Equal(t, "7", id)

	_, ok = extractID([]byte(`{"id_str":""}`), "id_str")
	assert.False(t, ok)

	_, ok = extractID(nil, "id_str")
	assert.False(t, ok)

	id, ok = extractID([]byte(`{"data":{"id":"9"}}`), "data.id")
	assert.True(t, ok)
	assert.Equal(t, "9", id)
}
