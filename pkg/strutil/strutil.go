// Package strutil 메시지 구성과 챗봇 응답에서 공통으로 쓰는 문자열 유틸리티를 제공합니다.
package strutil

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Ellipsis Truncate가 잘라낸 문자열 끝에 붙이는 표시입니다.
const Ellipsis = "..."

// NormalizeSpaces 문자열의 앞뒤 공백을 제거하고 연속된 공백을 하나로 축약합니다.
// 예: "  hello   world  " -> "hello world"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitAndTrim 구분자로 나눈 각 항목의 앞뒤 공백을 제거하고 빈 항목은 버립니다.
// 남는 항목이 없으면 nil을 반환합니다.
// 예: "a, , b,c" (구분자 ",") -> ["a", "b", "c"]
func SplitAndTrim(s, sep string) []string {
	var result []string
	for token := range strings.SplitSeq(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// Truncate s가 max 문자(rune)를 넘으면 Ellipsis를 포함해 정확히 max 문자가 되도록 자릅니다.
// max가 0 이하이면 자르지 않습니다.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}

	r := []rune(s)
	if max <= len(Ellipsis) {
		return string(r[:max])
	}

	return string(r[:max-len(Ellipsis)]) + Ellipsis
}

// FormatCommas 정수를 천 단위 구분 기호(,)가 포함된 문자열로 변환합니다.
// 예: 76030 -> "76,030"
func FormatCommas(num int64) string {
	str := strconv.FormatInt(num, 10)

	sign := ""
	if num < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var sb strings.Builder
	sb.Grow(len(sign) + len(str) + (len(str)-1)/3)
	sb.WriteString(sign)

	first := len(str) % 3
	if first == 0 {
		first = 3
	}
	sb.WriteString(str[:first])
	for i := first; i < len(str); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(str[i : i+3])
	}

	return sb.String()
}

// ContainsFold s가 substr을 대소문자 구분 없이 포함하는지 검사합니다.
// 빈 substr은 항상 포함된 것으로 봅니다.
//
// 문자 경계마다 substr 길이만큼 잘라 strings.EqualFold로 비교하므로 할당이 없습니다.
// 대소문자 변환 후 바이트 길이가 달라지는 문자(터키어 İ 등)는 일치하지 않을 수 있습니다.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}

	for i := range s {
		if i+len(substr) > len(s) {
			break
		}
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return true
		}
	}
	return false
}
