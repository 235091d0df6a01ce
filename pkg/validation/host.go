package validation

import (
	"fmt"
	"net"
	"strings"
)

// ValidatePort 1-65535 범위의 포트 번호인지 검사합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname localhost, IP 주소 또는 RFC 1123 호스트명인지 검사합니다.
//
// 도메인 규칙: 전체 253자 이하, 레이블은 1-63자의 영문/숫자/하이픈이며 하이픈으로 시작하거나 끝날 수 없습니다.
// 최상위 레이블은 숫자로만 이루어질 수 없습니다.
func ValidateHostname(host string) error {
	if host == "localhost" || net.ParseIP(host) != nil {
		return nil
	}

	if len(host) > 253 {
		return fmt.Errorf("호스트명은 253자를 넘을 수 없습니다 (len=%d)", len(host))
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if err := validateLabel(label, host); err != nil {
			return err
		}
	}

	if tld := labels[len(labels)-1]; strings.Trim(tld, "0123456789") == "" {
		return fmt.Errorf("최상위 도메인은 숫자로만 이루어질 수 없습니다 (tld=%q)", tld)
	}

	return nil
}

func validateLabel(label, host string) error {
	switch {
	case label == "":
		return fmt.Errorf("호스트명에 빈 레이블이 있습니다 (host=%q)", host)
	case len(label) > 63:
		return fmt.Errorf("레이블은 63자를 넘을 수 없습니다 (label=%q)", label)
	case label[0] == '-' || label[len(label)-1] == '-':
		return fmt.Errorf("레이블은 하이픈으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
	}

	for _, r := range label {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return fmt.Errorf("호스트명에 허용되지 않는 문자가 있습니다 (char=%q, host=%q)", r, host)
		}
	}

	return nil
}
