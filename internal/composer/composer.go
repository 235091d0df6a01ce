// Package composer 상품 정보로 게시 메시지(이름, 상품 주소, 해시태그)를 만듭니다.
// 모든 함수는 외부 상태에 의존하지 않으므로 같은 입력에 항상 같은 결과를 냅니다.
package composer

import (
	"strings"

	"github.com/darkkaiser/store-promoter/internal/catalog"
	"github.com/darkkaiser/store-promoter/pkg/strutil"
)

// 기본 구성 값
const (
	DefaultBaseURL   = "https://iraq-ninja-store.arabsad.com/products/"
	DefaultRegionTag = "#العراق"
)

// DefaultSKUPrefixes SKU에서 떼어낼 카테고리 문자입니다.
var DefaultSKUPrefixes = []string{"A", "G"}

// DefaultCityTags 이라크 18개 주의 해시태그입니다.
var DefaultCityTags = []string{
	"#بغداد", "#البصرة", "#الموصل", "#أربيل", "#كربلاء", "#النجف",
	"#السليمانية", "#الأنبار", "#ديالى", "#ذي_قار", "#واسط", "#صلاح_الدين",
	"#بابل", "#كركوك", "#القادسية", "#ميسان", "#المثنى", "#دهوك",
}

// Options Composer 구성 값입니다. 비어 있는 항목은 기본값을 사용합니다.
type Options struct {
	BaseURL     string
	RegionTag   string
	CityTags    []string
	SKUPrefixes []string
}

// Composer 게시 메시지를 만듭니다. 생성 후에는 읽기만 하므로 동시에 사용해도 안전합니다.
type Composer struct {
	baseURL     string
	regionTag   string
	cityTags    []string
	skuPrefixes []string
}

// New 새로운 Composer를 생성합니다.
func New(opts Options) *Composer {
	c := &Composer{
		baseURL:     opts.BaseURL,
		regionTag:   opts.RegionTag,
		cityTags:    append([]string(nil), opts.CityTags...),
		skuPrefixes: append([]string(nil), opts.SKUPrefixes...),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.regionTag == "" {
		c.regionTag = DefaultRegionTag
	}
	if opts.CityTags == nil {
		c.cityTags = append([]string(nil), DefaultCityTags...)
	}
	if opts.SKUPrefixes == nil {
		c.skuPrefixes = append([]string(nil), DefaultSKUPrefixes...)
	}

	return c
}

// Slug 상품 페이지 파일명을 만듭니다.
// 예: {Title: "ميزان الطعام", SKU: "A.001247"} → "ميزان-الطعام-001247.html"
func (c *Composer) Slug(title, sku string) string {
	return Slug(title, sku, c.skuPrefixes)
}

// Slug 지정한 SKU 접두사 목록으로 상품 페이지 파일명을 만듭니다.
// 이름이나 SKU 한쪽이 비어 있으면 '-' 없이 다른 쪽만 사용합니다.
func Slug(title, sku string, skuPrefixes []string) string {
	parts := make([]string, 0, 2)
	if s := TitleSlug(title); s != "" {
		parts = append(parts, s)
	}
	if s := stripSKUPrefix(sku, skuPrefixes); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "-") + ".html"
}

// ProductURL 기본 주소와 슬러그를 이은 상품 페이지 전체 주소입니다.
func (c *Composer) ProductURL(p catalog.Product) string {
	return c.baseURL + c.Slug(p.Title, p.SKU)
}

// Compose 게시 메시지를 만듭니다.
//
//	{이름}
//
//	{상품 주소}
//
//	{해시태그} {지역 태그} {도시 태그...}
//
// 태그 줄의 빈 항목은 건너뛰며, 태그가 하나도 없으면 태그 줄을 생략합니다.
func (c *Composer) Compose(p catalog.Product) string {
	tags := make([]string, 0, 2+len(c.cityTags))
	tags = append(tags, Hashtags(p.Title), c.regionTag)
	tags = append(tags, c.cityTags...)

	var nonEmpty []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}

	sections := []string{strutil.NormalizeSpaces(p.Title), c.ProductURL(p)}
	if len(nonEmpty) > 0 {
		sections = append(sections, strings.Join(nonEmpty, " "))
	}

	return strings.Join(sections, "\n\n")
}

// Fit text가 max 문자를 넘으면 "..."로 끝나도록 자릅니다. max가 0 이하이면 그대로 반환합니다.
func Fit(text string, max int) string {
	return strutil.Truncate(text, max)
}
