package fetcher

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

const redacted = "xxxxx"

var (
	// sensitiveExactKeys 대소문자 구분 없이 전체가 일치할 때만 가리는 쿼리 키입니다.
	// "key" 같은 단어를 부분 일치로 검사하면 "monkey"까지 가려집니다.
	sensitiveExactKeys = []string{
		"token", "auth", "key", "secret", "pass", "password", "signature",
		"access_token", "api_key", "app_key", "client_secret", "consumer_key",
		"oauth_token", "oauth_signature", "oauth_consumer_key",
	}

	sensitiveSuffixes = []string{"_token", "_secret", "_sig", "_password"}

	sensitiveHeaders = []string{"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie"}
)

// redactHeaders 인증 관련 헤더를 가린 복사본을 반환합니다.
func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}

	masked := h.Clone()
	for _, key := range sensitiveHeaders {
		if masked.Get(key) != "" {
			masked.Set(key, "***")
		}
	}

	return masked
}

// redactURL 사용자 정보와 민감한 쿼리 값을 가린 URL 문자열을 반환합니다.
// 원본 URL은 변경하지 않습니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	ru := *u
	if u.User != nil {
		if _, has := u.User.Password(); has {
			ru.User = url.UserPassword(u.User.Username(), redacted)
		} else if u.User.Username() != "" {
			ru.User = url.User(redacted)
		}
	}

	if u.RawQuery != "" {
		query := ru.Query()
		for key := range query {
			if isSensitiveKey(key) {
				query.Set(key, redacted)
			}
		}
		ru.RawQuery = query.Encode()
	}

	return ru.String()
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	if slices.Contains(sensitiveExactKeys, lower) {
		return true
	}

	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}

	return false
}
