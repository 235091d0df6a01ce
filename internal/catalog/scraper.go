package catalog

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/internal/pkg/fetcher"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/darkkaiser/store-promoter/pkg/strutil"
)

const component = "catalog.scraper"

// 스토어프론트 상품 카드 마크업
const (
	selectorCard    = ".product-card"
	selectorTitle   = ".product-title"
	selectorSKU     = ".product-sku"
	selectorPrice   = ".product-price"
	selectorDetails = "a.btn-details"
)

// 가격 표시 뒤에 붙는 통화 단위
var currencySuffixes = []string{"د.ع", "IQD"}

// Scraper 스토어프론트 목록 페이지에서 상품 카드를 수집합니다.
type Scraper struct {
	fetcher fetcher.Fetcher
}

// NewScraper 새로운 Scraper를 생성합니다. f는 멱등 GET 재시도가 설정된 Fetcher여야 합니다.
func NewScraper(f fetcher.Fetcher) *Scraper {
	return &Scraper{fetcher: f}
}

// Scrape pageURL의 상품 카드를 페이지 순서대로 반환합니다. 같은 SKU는 처음 것만 남깁니다.
// 상품 카드가 하나도 없으면 ParsingFailed를 반환합니다.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) ([]Product, error) {
	doc, err := fetcher.FetchHTMLDocument(ctx, s.fetcher, pageURL)
	if err != nil {
		return nil, err
	}

	products, skipped := parseCards(doc)

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"url":      pageURL,
		"products": len(products),
		"skipped":  skipped,
	})
	if len(products) == 0 {
		logger.Warn("상품 카드를 찾지 못했습니다")
		return nil, apperrors.Newf(apperrors.ParsingFailed, "상품 카드를 찾을 수 없습니다 (url=%s, selector=%s)", pageURL, selectorCard)
	}
	logger.Info("스토어프론트 상품 수집 완료")

	return products, nil
}

func parseCards(doc *goquery.Document) (products []Product, skipped int) {
	seen := make(map[string]struct{})

	doc.Find(selectorCard).Each(func(_ int, card *goquery.Selection) {
		p := Product{
			Title: strutil.NormalizeSpaces(card.Find(selectorTitle).First().Text()),
			SKU:   parseSKU(card.Find(selectorSKU).First().Text()),
			Price: parsePrice(card.Find(selectorPrice).First().Text()),
		}
		if href, ok := card.Find(selectorDetails).First().Attr("href"); ok {
			p.URL = resolvePath(doc.Url, href)
		}

		if p.validate() != nil {
			skipped++
			return
		}
		if _, dup := seen[p.SKU]; dup {
			skipped++
			return
		}
		seen[p.SKU] = struct{}{}

		products = append(products, p)
	})

	return products, skipped
}

// parseSKU "SKU: A.001247" → "A.001247"
func parseSKU(s string) string {
	s = strutil.NormalizeSpaces(s)
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// parsePrice "76,030 د.ع" → "76,030"
func parsePrice(s string) string {
	s = strutil.NormalizeSpaces(s)
	for _, suffix := range currencySuffixes {
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}
	return s
}

// resolvePath 같은 사이트의 링크는 경로만 남기고, 다른 사이트의 링크는 절대 주소로 둡니다.
func resolvePath(base *url.URL, href string) string {
	href = strings.TrimSpace(href)

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}

	if ref.Host == "" || (base != nil && ref.Host == base.Host) {
		path := ref.Path
		if ref.RawQuery != "" {
			path += "?" + ref.RawQuery
		}
		return path
	}

	return ref.String()
}
