package composer

import (
	"strings"
	"unicode/utf8"
)

const (
	hashtagMinRunes = 4 // 3글자 이하 단어(전치사 등)는 태그로 만들지 않습니다.
	hashtagMaxWords = 3
)

// Hashtags 상품 이름에서 최대 세 개의 해시태그를 만듭니다.
//
// 공백으로 나눈 단어 중 4글자 이상인 앞의 세 단어를 고른 뒤, 아랍 문자와 영문/숫자만 남기고 '#'을 붙입니다.
// 정리 후 비어 버린 단어는 건너뜁니다.
func Hashtags(title string) string {
	var candidates []string
	for _, w := range strings.Fields(title) {
		if utf8.RuneCountInString(w) >= hashtagMinRunes {
			candidates = append(candidates, w)
			if len(candidates) == hashtagMaxWords {
				break
			}
		}
	}

	tags := make([]string, 0, len(candidates))
	for _, w := range candidates {
		cleaned := strings.Map(func(r rune) rune {
			if isArabic(r) || isASCIIAlnum(r) {
				return r
			}
			return -1
		}, w)
		if cleaned != "" {
			tags = append(tags, "#"+cleaned)
		}
	}

	return strings.Join(tags, " ")
}
