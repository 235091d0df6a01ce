package rotation

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

const maxNameBytes = 50

// 경로 이탈과 Windows 예약 문자를 막기 위한 치환 규칙입니다.
var filenameReplacer = strings.NewReplacer(
	"..", "--",
	"/", "-",
	"\\", "-",
	"|", "-",
	"<", "-",
	">", "-",
	":", "-",
	"\"", "-",
	"?", "-",
	"*", "-",
)

// stateFilename "rotation-{kebab(key)}-{fnv64a(key)}.json" 형식의 파일명을 만듭니다.
// 읽기 쉬운 앞부분이 정제 과정에서 겹치더라도 원본 키의 해시로 구분됩니다.
func stateFilename(key string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))

	return fmt.Sprintf("rotation-%s-%016x.json", truncateBytes(sanitizeName(key), maxNameBytes), h.Sum64())
}

func sanitizeName(s string) string {
	kebab := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '-'
		}
		return r
	}, strcase.ToKebab(s))

	return filenameReplacer.Replace(kebab)
}

// truncateBytes 문자가 중간에 잘리지 않도록 limit 바이트 이하로 자릅니다.
func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	n := 0
	for n < len(s) {
		_, size := utf8.DecodeRuneInString(s[n:])
		if n+size > limit {
			break
		}
		n += size
	}
	return s[:n]
}
