package composer

import (
	"unicode"
)

// arabicScript 슬러그와 해시태그에 남길 아랍 문자 유니코드 블록입니다.
var arabicScript = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1}, // Arabic
		{Lo: 0x0750, Hi: 0x077F, Stride: 1}, // Arabic Supplement
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1}, // Arabic Extended-A
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1}, // Arabic Presentation Forms-A
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1}, // Arabic Presentation Forms-B
	},
}

func isArabic(r rune) bool {
	return unicode.Is(arabicScript, r)
}

func isASCIIAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
