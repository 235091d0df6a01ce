package oauth1

import (
	"strings"
)

const upperHex = "0123456789ABCDEF"

// PercentEncode RFC 3986 비예약 문자(A-Z a-z 0-9 - . _ ~)를 제외한 모든 바이트를 대문자 %XX로 인코딩합니다.
// 입력은 UTF-8 바이트 단위로 처리되며 공백은 "+"가 아니라 "%20"이 됩니다.
func PercentEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[c>>4])
		sb.WriteByte(upperHex[c&0x0F])
	}

	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
