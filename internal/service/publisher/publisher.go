// Package publisher 완성된 홍보 문구를 서명된 요청으로 게시 API에 전송합니다.
//
// 게시 요청은 멱등하지 않으므로 어떤 경우에도 재전송하지 않습니다.
// 실패는 원인에 따라 MissingCredential, RemoteRejection, Unavailable로 구분됩니다.
package publisher

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/darkkaiser/store-promoter/internal/config"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/internal/pkg/fetcher"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/darkkaiser/store-promoter/pkg/oauth1"
)

const component = "publisher"

// API 버전별 기본 게시 주소
const (
	EndpointV1 = "https://api.twitter.com/1.1/statuses/update.json"
	EndpointV2 = "https://api.twitter.com/2/tweets"
)

// maxResponseBytes 성공 응답에서 읽을 최대 크기입니다.
const maxResponseBytes = 64 * 1024

// forbiddenHints 403 응답을 받았을 때 운영자에게 안내할 점검 항목입니다.
var forbiddenHints = []string{
	"앱 권한이 'Read and Write'로 설정되어 있는지 확인하세요",
	"권한을 변경했다면 Access Token과 Secret을 다시 발급해야 합니다",
	"동일한 문구의 중복 게시는 거부될 수 있습니다",
}

// Receipt 게시 결과입니다. 응답에서 식별자를 찾지 못하면 ID와 URL은 비어 있습니다.
type Receipt struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	PostedAt time.Time `json:"posted_at"`
}

// Option Client 설정 변경 함수입니다.
type Option func(*Client)

// WithSignerOptions 서명기의 nonce, 시각 함수를 교체합니다. 테스트에서 사용합니다.
func WithSignerOptions(opts ...oauth1.Option) Option {
	return func(c *Client) { c.signerOpts = append(c.signerOpts, opts...) }
}

// WithClock 게시 시각 함수를 교체합니다.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client 게시 API 클라이언트입니다.
type Client struct {
	version   string
	endpoint  string
	statusURL string

	signer     *oauth1.Signer
	signerOpts []oauth1.Option

	fetcher fetcher.Fetcher
	now     func() time.Time
}

// New 자격 증명을 검사한 뒤 Client를 생성합니다.
// 하나라도 비어 있으면 네트워크 요청 없이 비어 있는 환경 변수 이름을 모두 담은 MissingCredential 에러를 반환합니다.
// f가 nil이면 재시도 없는 기본 Fetcher 체인을 만듭니다.
func New(cfg config.PublisherConfig, creds config.Credentials, f fetcher.Fetcher, opts ...Option) (*Client, error) {
	if missing := creds.Missing(); len(missing) > 0 {
		return nil, apperrors.Newf(apperrors.MissingCredential, "게시 API 자격 증명이 설정되지 않았습니다: %s", strings.Join(missing, ", "))
	}

	c := &Client{
		version:   cfg.APIVersion,
		endpoint:  cfg.Endpoint,
		statusURL: cfg.StatusURL,
		fetcher:   f,
		now:       time.Now,
	}
	if c.version == "" {
		c.version = config.PublisherAPIv1
	}
	if c.endpoint == "" {
		c.endpoint = defaultEndpoint(c.version)
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.fetcher == nil {
		c.fetcher = fetcher.New(fetcher.Config{
			Timeout:            cfg.Timeout,
			MaxRetries:         0,
			AllowedStatusCodes: []int{http.StatusOK, http.StatusCreated},
		})
	}

	c.signer = oauth1.NewSigner(oauth1.Credentials{
		ConsumerKey:    creds.APIKey,
		ConsumerSecret: creds.APISecret,
		Token:          creds.AccessToken,
		TokenSecret:    creds.AccessTokenSecret,
	}, c.signerOpts...)

	return c, nil
}

func defaultEndpoint(version string) string {
	if version == config.PublisherAPIv2 {
		return EndpointV2
	}
	return EndpointV1
}

// Close 내부 Fetcher의 유휴 커넥션을 정리합니다.
func (c *Client) Close() error {
	return c.fetcher.Close()
}

// Post text를 게시합니다.
func (c *Client) Post(ctx context.Context, text string) (*Receipt, error) {
	var (
		req  *http.Request
		want int
		idAt string
		err  error
	)
	if c.version == config.PublisherAPIv2 {
		req, err = c.newJSONRequest(ctx, text)
		want, idAt = http.StatusCreated, "data.id"
	} else {
		req, err = c.newFormRequest(ctx, text)
		want, idAt = http.StatusOK, "id_str"
	}
	if err != nil {
		return nil, err
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"api_version": c.version,
		"endpoint":    c.endpoint,
		"length":      len([]rune(text)),
	})

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, c.classify(logger, err)
	}

	if err := fetcher.CheckResponseStatus(resp, want); err != nil {
		resp.Body.Close()
		return nil, c.classify(logger, err)
	}

	body, err := fetcher.ReadBody(resp, maxResponseBytes)
	if err != nil {
		// 게시는 이미 접수되었으므로 실패로 보지 않습니다.
		logger.WithError(err).Warn("게시 응답 본문을 읽지 못했습니다")
	}

	receipt := &Receipt{PostedAt: c.now()}
	if id, ok := extractID(body, idAt); ok {
		receipt.ID = id
		receipt.URL = c.statusURL + id
	} else {
		logger.WithField("body", string(body)).Warn("게시 응답에서 게시물 ID를 찾지 못했습니다")
	}

	logger.WithFields(applog.Fields{
		"id":  receipt.ID,
		"url": receipt.URL,
	}).Info("게시 완료")

	return receipt, nil
}

// classify 전송 과정의 에러를 게시 에러 종류로 바꿉니다.
func (c *Client) classify(logger *applog.Entry, err error) error {
	var statusErr *fetcher.HTTPStatusError
	if errors.As(err, &statusErr) {
		entry := logger.WithFields(applog.Fields{
			"status_code": statusErr.StatusCode,
			"body":        statusErr.BodySnippet,
		})
		if statusErr.StatusCode == http.StatusForbidden {
			for _, hint := range forbiddenHints {
				entry.Warn(hint)
			}
		}
		entry.Error("게시 API가 요청을 거부했습니다")

		return apperrors.Wrapf(statusErr, apperrors.RemoteRejection, "게시 API가 요청을 거부했습니다 (status=%d)", statusErr.StatusCode)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.Timeout, "게시 요청 시간이 초과되었습니다")
	}

	return apperrors.Wrap(err, apperrors.Unavailable, "게시 API에 연결하지 못했습니다")
}
