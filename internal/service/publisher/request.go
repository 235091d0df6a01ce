package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/pkg/oauth1"
	"github.com/tidwall/gjson"
)

// newFormRequest v1.1 요청입니다. 본문의 status 필드도 서명에 포함됩니다.
func (c *Client) newFormRequest(ctx context.Context, text string) (*http.Request, error) {
	body := "status=" + oauth1.PercentEncode(text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Internal, "게시 요청 생성 실패 (url=%s)", c.endpoint)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", c.signer.Authorize(http.MethodPost, c.endpoint, map[string]string{"status": text}))

	return req, nil
}

// newJSONRequest v2 요청입니다. JSON 본문은 서명 대상이 아닙니다.
func (c *Client) newJSONRequest(ctx context.Context, text string) (*http.Request, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(struct {
		Text string `json:"text"`
	}{Text: text}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "게시 요청 본문 생성 실패")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Internal, "게시 요청 생성 실패 (url=%s)", c.endpoint)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.signer.Authorize(http.MethodPost, c.endpoint, nil))

	return req, nil
}

// extractID 응답 JSON의 path 위치에서 게시물 ID를 읽습니다.
func extractID(body []byte, path string) (string, bool) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return "", false
	}

	id := gjson.GetBytes(body, path)
	if !id.Exists() || id.String() == "" {
		return "", false
	}
	return id.String(), true
}
