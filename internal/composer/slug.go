package composer

import (
	"strings"
	"unicode"
)

// TitleSlug 상품 이름을 URL 경로용 슬러그로 바꿉니다.
//
// 공백 묶음은 '-' 하나로 바꾸고, 아랍 문자와 '-' 이외의 문자는 버립니다.
// 연속된 '-'는 하나로 줄이고 앞뒤의 '-'는 제거합니다. 결과에 다시 적용해도 바뀌지 않습니다.
func TitleSlug(title string) string {
	var sb strings.Builder
	sb.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.TrimSpace(title) {
		switch {
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		case isArabic(r):
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// stripSKUPrefix 알려진 카테고리 문자와 '.'로 시작하면 그 부분을 떼고 소문자로 바꿉니다.
// 예: "A.001247" → "001247", "x.12" → "x.12" (x가 알려진 접두사가 아닌 경우)
func stripSKUPrefix(sku string, prefixes []string) string {
	sku = strings.TrimSpace(sku)
	if len(sku) >= 2 && sku[1] == '.' {
		for _, p := range prefixes {
			if strings.EqualFold(sku[:1], p) {
				sku = sku[2:]
				break
			}
		}
	}
	return strings.ToLower(sku)
}
