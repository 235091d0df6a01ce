package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"sort"
	"strings"
)

// SignatureMethod 이 패키지가 지원하는 유일한 서명 방식입니다.
const SignatureMethod = "HMAC-SHA1"

type encodedPair struct {
	key   string
	value string
}

// Sign OAuth 1.0a 서명 값을 계산합니다.
//
// params에는 oauth_* 프로토콜 필드와 서명 대상 본문 필드를 모두 담습니다(oauth_signature 제외).
// rawURL은 정규화하지 않고 그대로 인코딩하며, tokenSecret은 비어 있어도 됩니다.
// 입력을 검증하지 않으며 실패하지 않습니다.
func Sign(method, rawURL string, params map[string]string, consumerSecret, tokenSecret string) string {
	base := strings.Join([]string{
		strings.ToUpper(method),
		PercentEncode(rawURL),
		PercentEncode(normalizeParams(params)),
	}, "&")

	key := PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// normalizeParams 인코딩된 이름(같으면 값) 순으로 정렬하여 name=value를 '&'로 잇습니다.
func normalizeParams(params map[string]string) string {
	pairs := make([]encodedPair, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, encodedPair{key: PercentEncode(k), value: PercentEncode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(p.value)
	}

	return sb.String()
}

// AuthorizationHeader params 중 oauth_* 필드만 골라 Authorization 헤더 값을 만듭니다.
//
//	OAuth oauth_consumer_key="...", oauth_nonce="...", ...
func AuthorizationHeader(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if strings.HasPrefix(k, "oauth_") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = PercentEncode(k) + `="` + PercentEncode(params[k]) + `"`
	}

	return "OAuth " + strings.Join(parts, ", ")
}
