package responder

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText 응답의 HTML 조각을 CLI와 메신저용 일반 텍스트로 바꿉니다.
// 링크는 "텍스트: 절대주소" 형태가 되며, 상대 주소는 baseURL 기준으로 해석합니다.
func PlainText(fragment, baseURL string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimRight(fragment, "\n")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + fragment + "</body>"))
	if err != nil {
		return strings.TrimRight(fragment, "\n")
	}

	base, _ := url.Parse(baseURL)
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		href, ok := a.Attr("href")
		if !ok || href == "" {
			a.ReplaceWithHtml(escapeText(text))
			return
		}

		link := absoluteURL(base, href)
		if text == "" {
			a.ReplaceWithHtml(escapeText(link))
		} else {
			a.ReplaceWithHtml(escapeText(text + ": " + link))
		}
	})

	return strings.TrimRight(doc.Find("body").Text(), "\n")
}

func escapeText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// absoluteURL 경로는 퍼센트 인코딩하지 않고 읽을 수 있는 형태로 둡니다.
func absoluteURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() || base == nil || base.Host == "" {
		return href
	}

	u := base.ResolveReference(ref)
	s := u.Scheme + "://" + u.Host + u.Path
	if u.RawQuery != "" {
		s += "?" + u.RawQuery
	}
	return s
}
