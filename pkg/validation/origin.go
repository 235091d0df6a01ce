package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidateCORSOrigin origin이 'Scheme://Host[:Port]' 형태의 CORS Origin인지 검사합니다.
// 단독 와일드카드('*')는 허용하며, 경로(후행 '/' 포함)와 쿼리, Fragment, UserInfo는 허용하지 않습니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	switch {
	case origin == "*":
		return nil
	case origin == "":
		return fmt.Errorf("CORS Origin이 비어 있습니다")
	case strings.HasSuffix(origin, "/"):
		return fmt.Errorf("CORS Origin은 '/'로 끝날 수 없습니다 (origin=%q)", origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin을 해석할 수 없습니다 (origin=%q): %w", origin, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CORS Origin은 http 또는 https만 사용할 수 있습니다 (origin=%q)", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("CORS Origin에는 경로, 쿼리, Fragment, 사용자 정보를 넣을 수 없습니다 (origin=%q)", origin)
	}

	return validateHostPort(u, origin)
}

// ValidateHTTPURL 스토어프론트 주소처럼 절대 경로의 http(s) URL인지 검사합니다.
func ValidateHTTPURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("URL이 비어 있습니다")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("URL을 해석할 수 없습니다 (url=%q): %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL은 http 또는 https 스킴이어야 합니다 (url=%q)", raw)
	}

	return validateHostPort(u, raw)
}

func validateHostPort(u *url.URL, raw string) error {
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("포트 번호가 올바르지 않습니다 (input=%q, port=%s)", raw, p)
		}
		if err := ValidatePort(port); err != nil {
			return fmt.Errorf("%w (input=%q)", err, raw)
		}
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("호스트가 없습니다 (input=%q)", raw)
	}

	return ValidateHostname(host)
}
