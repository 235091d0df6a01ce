package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/store-promoter/internal/catalog"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/internal/responder"
	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/api/httputil"
	"github.com/darkkaiser/store-promoter/internal/service/api/model/response"
	"github.com/darkkaiser/store-promoter/internal/service/api/v1/handler"
	"github.com/darkkaiser/store-promoter/internal/service/api/v1/model"
	"github.com/darkkaiser/store-promoter/internal/service/contract"
	"github.com/darkkaiser/store-promoter/internal/service/promoter"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAppKey = "test-app-key-0123"

type mockCampaigns struct {
	mock.Mock
}

func (m *mockCampaigns) Run(ctx context.Context, id string, opts promoter.RunOptions) (*promoter.Result, error) {
	args := m.Called(ctx, id, opts)
	if r := args.Get(0); r != nil {
		return r.(*promoter.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCampaigns) Campaigns(ctx context.Context) []promoter.CampaignStatus {
	return m.Called(ctx).Get(0).([]promoter.CampaignStatus)
}

func newChatbot() *responder.Responder {
	return responder.New(responder.Options{
		Products: []catalog.Product{
			{Title: "ساعة ذكية", SKU: "A.000010", Price: "25,000", URL: "/products/watch.html"},
		},
		Keywords:     []responder.Keyword{{Keyword: "سعر", Reply: "الأسعار في صفحة المتجر"}},
		DefaultReply: "مرحبا!",
	})
}

func newTestEcho(chatbot handler.Chatbot, campaigns handler.CampaignService, typingDelay time.Duration) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler

	h := handler.NewHandler(chatbot, campaigns, handler.Options{TypingDelay: typingDelay})
	RegisterRoutes(e, h, testAppKey)

	return e
}

func doRequest(e *echo.Echo, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestChat(t *testing.T) {
	e := newTestEcho(newChatbot(), &mockCampaigns{}, 0)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantKind responder.Kind
	}{
		{name: "상품 검색", body: `{"message":"ساعة"}`, wantCode: http.StatusOK, wantKind: responder.KindProduct},
		{name: "키워드", body: `{"message":"كم السعر؟"}`, wantCode: http.StatusOK, wantKind: responder.KindKeyword},
		{name: "기본 응답", body: `{"message":"hello"}`, wantCode: http.StatusOK, wantKind: responder.KindDefault},
		{name: "빈 메시지", body: `{"message":""}`, wantCode: http.StatusBadRequest},
		{name: "공백 메시지", body: `{"message":"   "}`, wantCode: http.StatusBadRequest},
		{name: "필드 누락", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "JSON 오류", body: `{"message":`, wantCode: http.StatusBadRequest},
		{name: "최대 길이 초과", body: `{"message":"` + strings.Repeat("a", 501) + `"}`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodPost, "/api/v1/chat", tt.body, nil)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			if tt.wantCode != http.StatusOK {
				var resp response.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Message)
				return
			}

			var resp model.ChatResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Kind)
			assert.NotEmpty(t, resp.Reply)
			if tt.wantKind == responder.KindProduct {
				require.Len(t, resp.Products, 1)
				assert.Equal(t, "A.000010", resp.Products[0].SKU)
			}
		})
	}
}

func TestChat_MessageRequiredMessage(t *testing.T) {
	e := newTestEcho(newChatbot(), &mockCampaigns{}, 0)

	rec := doRequest(e, http.MethodPost, "/api/v1/chat", `{"message":" "}`, nil)

	assert.Contains(t, rec.Body.String(), constants.ErrMsgMessageRequired)
}

func TestChat_Disabled(t *testing.T) {
	e := newTestEcho(nil, &mockCampaigns{}, 0)

	rec := doRequest(e, http.MethodPost, "/api/v1/chat", `{"message":"hi"}`, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatWebSocket(t *testing.T) {
	const delay = 50 * time.Millisecond

	srv := httptest.NewServer(newTestEcho(newChatbot(), &mockCampaigns{}, delay))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chat/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	// 빈 문장은 응답 없이 무시됩니다.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("   ")))

	start := time.Now()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ساعة")))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var got model.ChatResponse
	require.NoError(t, conn.ReadJSON(&got))

	assert.GreaterOrEqual(t, time.Since(start), delay, "입력 지연 후에 응답해야 합니다")
	assert.Equal(t, responder.KindProduct, got.Kind)
	assert.Contains(t, got.Reply, "ساعة ذكية")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, responder.KindDefault, got.Kind)
	assert.Equal(t, "مرحبا!", got.Reply)
}

func TestCampaigns_Auth(t *testing.T) {
	campaigns := &mockCampaigns{}
	campaigns.On("Campaigns", mock.Anything).Return([]promoter.CampaignStatus{{ID: "iraq-daily", Strategy: "sequential", Products: 15, LastIndex: 2}})
	e := newTestEcho(newChatbot(), campaigns, 0)

	rec := doRequest(e, http.MethodGet, "/api/v1/campaigns", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/campaigns", "", map[string]string{constants.HeaderAppKey: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/campaigns", "", map[string]string{constants.HeaderAppKey: testAppKey})
	require.Equal(t, http.StatusOK, rec.Code)

	var list []promoter.CampaignStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "iraq-daily", list[0].ID)
	assert.Equal(t, 2, list[0].LastIndex)
}

func TestRunCampaign(t *testing.T) {
	auth := map[string]string{constants.HeaderAppKey: testAppKey}

	tests := []struct {
		name       string
		target     string
		wantOpts   *promoter.RunOptions
		runErr     error
		wantCode   int
		wantDryRun bool
	}{
		{
			name:     "게시",
			target:   "/api/v1/campaigns/iraq-daily/run",
			wantOpts: &promoter.RunOptions{RunBy: contract.RunByAPI},
			wantCode: http.StatusOK,
		},
		{
			name:       "미리보기",
			target:     "/api/v1/campaigns/iraq-daily/run?dry_run=true",
			wantOpts:   &promoter.RunOptions{DryRun: true, RunBy: contract.RunByAPI},
			wantCode:   http.StatusOK,
			wantDryRun: true,
		},
		{
			name:     "dry_run 형식 오류",
			target:   "/api/v1/campaigns/iraq-daily/run?dry_run=maybe",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "등록되지 않은 캠페인",
			target:   "/api/v1/campaigns/iraq-daily/run",
			wantOpts: &promoter.RunOptions{RunBy: contract.RunByAPI},
			runErr:   apperrors.New(apperrors.NotFound, "등록되지 않은 캠페인입니다"),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "실행 중",
			target:   "/api/v1/campaigns/iraq-daily/run",
			wantOpts: &promoter.RunOptions{RunBy: contract.RunByAPI},
			runErr:   apperrors.New(apperrors.Conflict, "이미 실행 중입니다"),
			wantCode: http.StatusConflict,
		},
		{
			name:     "게시 거부",
			target:   "/api/v1/campaigns/iraq-daily/run",
			wantOpts: &promoter.RunOptions{RunBy: contract.RunByAPI},
			runErr:   apperrors.New(apperrors.RemoteRejection, "게시 API가 요청을 거부했습니다 (status=403)"),
			wantCode: http.StatusBadGateway,
		},
		{
			name:     "자격 증명 누락",
			target:   "/api/v1/campaigns/iraq-daily/run",
			wantOpts: &promoter.RunOptions{RunBy: contract.RunByAPI},
			runErr:   apperrors.New(apperrors.MissingCredential, "자격 증명이 없습니다"),
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			campaigns := &mockCampaigns{}
			if tt.wantOpts != nil {
				var result *promoter.Result
				if tt.runErr == nil {
					result = &promoter.Result{RunID: "run-1", CampaignID: "iraq-daily", DryRun: tt.wantOpts.DryRun, Total: 15}
				}
				campaigns.On("Run", mock.Anything, "iraq-daily", *tt.wantOpts).Return(result, tt.runErr).Once()
			}
			e := newTestEcho(newChatbot(), campaigns, 0)

			rec := doRequest(e, http.MethodPost, tt.target, "", auth)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			if tt.wantCode == http.StatusOK {
				var result map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
				assert.Equal(t, "run-1", result["run_id"])
				assert.Equal(t, tt.wantDryRun, result["dry_run"])
			}

			campaigns.AssertExpectations(t)
		})
	}
}
