// Package catalog 스토어 상품 목록(JSON 배열 파일)과 스토어프론트 HTML 수집을 다룹니다.
package catalog

import (
	"strings"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/pkg/strutil"
	"github.com/tidwall/gjson"
)

// Product 게시와 챗봇 응답의 단위가 되는 상품입니다. 로드된 후에는 변경하지 않습니다.
type Product struct {
	Title string `json:"title"`
	SKU   string `json:"sku"`             // 카테고리 문자 + '.' + 숫자 (예: A.001247)
	Price string `json:"price,omitempty"` // 표시용 가격 문자열 (예: 76,030)
	URL   string `json:"url,omitempty"`   // 상대 경로, 비어 있으면 슬러그로 만듭니다.
}

// UnmarshalJSON 스토어프론트 스크립트가 쓰던 "name" 키와 숫자 가격도 받아들입니다.
func (p *Product) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return apperrors.New(apperrors.ParsingFailed, "상품 항목이 올바른 JSON이 아닙니다")
	}

	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return apperrors.Newf(apperrors.ParsingFailed, "상품 항목은 객체여야 합니다 (type=%s)", r.Type)
	}

	title := r.Get("title")
	if !title.Exists() {
		title = r.Get("name")
	}

	*p = Product{
		Title: strutil.NormalizeSpaces(title.String()),
		SKU:   strings.TrimSpace(r.Get("sku").String()),
		Price: formatPrice(r.Get("price")),
		URL:   strings.TrimSpace(r.Get("url").String()),
	}

	return nil
}

func formatPrice(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		return strutil.FormatCommas(v.Int())
	case gjson.String:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

// validate 게시에 필요한 최소 항목을 확인합니다.
func (p Product) validate() error {
	if p.Title == "" {
		return apperrors.Newf(apperrors.LocalFault, "상품 이름(title)이 비어 있습니다 (sku=%q)", p.SKU)
	}
	if p.SKU == "" {
		return apperrors.Newf(apperrors.LocalFault, "상품 SKU가 비어 있습니다 (title=%q)", p.Title)
	}
	return nil
}
