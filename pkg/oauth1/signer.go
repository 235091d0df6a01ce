package oauth1

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Credentials 서명에 필요한 소비자 키와 액세스 토큰입니다.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

// Signer 요청마다 nonce와 타임스탬프를 새로 만들어 Authorization 헤더를 생성합니다.
// 여러 고루틴에서 동시에 사용해도 안전합니다.
type Signer struct {
	creds Credentials
	nonce func() string
	now   func() time.Time
}

// Option Signer 설정을 변경합니다.
type Option func(*Signer)

// WithNonce nonce 생성 함수를 교체합니다.
func WithNonce(fn func() string) Option {
	return func(s *Signer) { s.nonce = fn }
}

// WithClock 현재 시각 함수를 교체합니다.
func WithClock(fn func() time.Time) Option {
	return func(s *Signer) { s.now = fn }
}

// NewSigner 새로운 Signer를 생성합니다.
func NewSigner(creds Credentials, opts ...Option) *Signer {
	s := &Signer{
		creds: creds,
		nonce: NewNonce,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewNonce 하이픈을 제거한 UUIDv4, 즉 32자리 16진수 문자열을 반환합니다.
func NewNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Authorize 프로토콜 필드 6개를 채우고 payload와 함께 서명한 Authorization 헤더 값을 반환합니다.
// payload는 form 본문처럼 서명에 포함되어야 하는 필드만 넘깁니다. JSON 본문은 서명 대상이 아닙니다.
func (s *Signer) Authorize(method, rawURL string, payload map[string]string) string {
	params := make(map[string]string, len(payload)+7)
	for k, v := range payload {
		params[k] = v
	}
	params["oauth_consumer_key"] = s.creds.ConsumerKey
	params["oauth_token"] = s.creds.Token
	params["oauth_signature_method"] = SignatureMethod
	params["oauth_timestamp"] = strconv.FormatInt(s.now().Unix(), 10)
	params["oauth_nonce"] = s.nonce()
	params["oauth_version"] = "1.0"

	params["oauth_signature"] = Sign(method, rawURL, params, s.creds.ConsumerSecret, s.creds.TokenSecret)

	return AuthorizationHeader(params)
}
