// Package responder 고객 문의에 상품 검색, 키워드 응답, 기본 응답 순서로 답합니다.
//
// 응답 생성은 입력 문자열에만 의존하는 순수 계산이며, 화면별 표현(HTML, 일반 텍스트)은 호출자가 결정합니다.
package responder

import (
	"fmt"
	"html"
	"strings"

	"github.com/darkkaiser/store-promoter/internal/catalog"
	"github.com/darkkaiser/store-promoter/internal/composer"
	"github.com/darkkaiser/store-promoter/pkg/strutil"
	"golang.org/x/text/cases"
)

// Kind 응답이 만들어진 경로입니다.
type Kind string

const (
	KindProduct Kind = "product"
	KindKeyword Kind = "keyword"
	KindDefault Kind = "default"
)

// productPathPrefix 상품에 URL이 없을 때 슬러그 앞에 붙이는 스토어프론트 경로입니다.
const productPathPrefix = "/products/"

// Keyword 키워드 응답 표의 한 행입니다.
type Keyword struct {
	Keyword string
	Reply   string
}

// Answer 구조화된 응답 결과입니다.
type Answer struct {
	Kind     Kind              `json:"kind"`
	Products []catalog.Product `json:"products,omitempty"`
	Keyword  string            `json:"keyword,omitempty"`
	Reply    string            `json:"reply"`
}

// Options Responder 구성 값입니다.
type Options struct {
	Products     []catalog.Product
	Keywords     []Keyword // 순서가 곧 우선순위입니다.
	DefaultReply string
	SKUPrefixes  []string // URL이 없는 상품의 슬러그를 만들 때 사용합니다.
}

type indexedProduct struct {
	product     catalog.Product
	foldedTitle string
	foldedSKU   string
}

// Responder 생성 후에는 읽기만 하므로 여러 고루틴에서 동시에 사용해도 안전합니다.
type Responder struct {
	products     []indexedProduct
	keywords     []Keyword
	defaultReply string
}

// New 새로운 Responder를 생성합니다.
func New(opts Options) *Responder {
	prefixes := opts.SKUPrefixes
	if prefixes == nil {
		prefixes = composer.DefaultSKUPrefixes
	}

	r := &Responder{
		products:     make([]indexedProduct, 0, len(opts.Products)),
		keywords:     make([]Keyword, 0, len(opts.Keywords)),
		defaultReply: opts.DefaultReply,
	}

	for _, p := range opts.Products {
		if p.URL == "" {
			p.URL = productPathPrefix + composer.Slug(p.Title, p.SKU, prefixes)
		}
		r.products = append(r.products, indexedProduct{
			product:     p,
			foldedTitle: fold(p.Title),
			foldedSKU:   fold(p.SKU),
		})
	}

	for _, k := range opts.Keywords {
		if strings.TrimSpace(k.Keyword) != "" {
			r.keywords = append(r.keywords, k)
		}
	}

	return r
}

// fold 유니코드 대소문자 접기를 적용합니다. 아랍어 발음 부호 등은 그대로 둡니다.
// cases.Caser는 상태를 가지므로 호출마다 새로 만듭니다.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Respond Answer의 응답 문구만 반환합니다.
func (r *Responder) Respond(input string) string {
	return r.Answer(input).Reply
}

// Answer 입력을 다음 순서로 처리합니다.
//
//  1. 공백뿐인 입력: 기본 응답
//  2. 상품 이름 또는 SKU에 입력이 포함된 상품이 있으면 목록 순서대로 모두 나열
//  3. 입력에 포함된 첫 번째 키워드(표 순서)의 응답
//  4. 기본 응답
func (r *Responder) Answer(input string) Answer {
	input = strings.TrimSpace(input)
	if input == "" {
		return r.fallback()
	}

	if matches := r.search(input); len(matches) > 0 {
		return Answer{Kind: KindProduct, Products: matches, Reply: formatProducts(matches)}
	}

	for _, k := range r.keywords {
		if strutil.ContainsFold(input, k.Keyword) {
			return Answer{Kind: KindKeyword, Keyword: k.Keyword, Reply: k.Reply}
		}
	}

	return r.fallback()
}

func (r *Responder) fallback() Answer {
	return Answer{Kind: KindDefault, Reply: r.defaultReply}
}

func (r *Responder) search(input string) []catalog.Product {
	q := fold(input)

	var matches []catalog.Product
	for _, p := range r.products {
		if strings.Contains(p.foldedTitle, q) || strings.Contains(p.foldedSKU, q) {
			matches = append(matches, p.product)
		}
	}
	return matches
}

// formatProducts 스토어프론트 채팅 위젯이 그대로 표시할 수 있는 HTML 조각을 만듭니다.
func formatProducts(products []catalog.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "وجدت %d منتج:\n\n", len(products))

	for _, p := range products {
		fmt.Fprintf(&sb, "🛍️ %s\n", html.EscapeString(p.Title))
		if p.Price != "" {
			fmt.Fprintf(&sb, "💰 السعر: %s د.ع\n", html.EscapeString(p.Price))
		}
		fmt.Fprintf(&sb, "📦 SKU: %s\n", html.EscapeString(p.SKU))
		fmt.Fprintf(&sb, "🔗 <a href=\"%s\" target=\"_blank\">شاهد التفاصيل</a>\n\n", html.EscapeString(p.URL))
	}

	return sb.String()
}
