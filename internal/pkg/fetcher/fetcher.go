// Package fetcher 외부 HTTP 호출(스토어프론트 페이지 수집, 게시 API 호출)에 사용하는 클라이언트 체인을 제공합니다.
//
// 기본 클라이언트(HTTPFetcher)를 상태 코드 검사, 재시도, 로깅 데코레이터로 감싸 조합합니다.
// 재시도는 멱등 메서드에만 적용되므로 게시(POST)는 절대 반복 전송되지 않습니다.
package fetcher

import (
	"context"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"golang.org/x/net/html/charset"
)

const component = "fetcher"

// Fetcher HTTP 요청을 수행합니다.
// 반환된 응답의 Body는 호출자가 닫아야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
	Close() error
}

// Get url로 GET 요청을 전송합니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "요청 생성 실패 (url=%s)", url)
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

// FetchHTMLDocument url의 HTML 문서를 가져와 goquery.Document로 파싱합니다.
// Content-Type의 charset을 보고 UTF-8이 아닌 페이지도 변환합니다.
func FetchHTMLDocument(ctx context.Context, f Fetcher, url string) (*goquery.Document, error) {
	resp, err := Get(ctx, f, url)
	if err != nil {
		if apperrors.UnderlyingType(err) != apperrors.Unknown {
			return nil, err
		}
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "HTML 페이지 요청 실패 (url=%s)", url)
	}
	defer resp.Body.Close()

	if err := CheckResponseStatus(resp); err != nil {
		return nil, err
	}

	utf8Reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "페이지 인코딩 변환 실패 (url=%s)", url)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "HTML 파싱 실패 (url=%s)", url)
	}

	// 리다이렉션 후의 최종 주소를 상대 경로 해석 기준으로 삼습니다.
	if resp.Request != nil {
		doc.Url = resp.Request.URL
	}

	return doc, nil
}

// ReadBody 응답 본문을 최대 limit 바이트까지 읽습니다.
func ReadBody(resp *http.Response, limit int64) ([]byte, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "응답 본문 읽기 실패")
	}

	return data, nil
}
