package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBotToken = "123456789:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"STORE_PROMOTER_DEBUG", "debug"},
		{"STORE_PROMOTER_API__LISTEN_PORT", "api.listen_port"},
		{"STORE_PROMOTER_HTTP_RETRY__MAX_RETRIES", "http_retry.max_retries"},
		{"STORE_PROMOTER_API__CORS__ALLOW_ORIGINS", "api.cors.allow_origins"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, envKey(tt.input), "input: %s", tt.input)
	}
}

func TestDefaults_Independent(t *testing.T) {
	a := Defaults()
	a.Message.CityTags[0] = "#changed"
	a.Chatbot.Keywords[0].Reply = "changed"

	b := Defaults()
	assert.Equal(t, "#بغداد", b.Message.CityTags[0])
	assert.NotEqual(t, "changed", b.Chatbot.Keywords[0].Reply)
	assert.Len(t, b.Message.CityTags, 18)
	assert.Equal(t, "سعر", b.Chatbot.Keywords[0].Keyword, "가격 문의가 가장 먼저 검사되어야 합니다")
}

func TestLoadWithFile_MinimalUsesDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, Defaults().Message, cfg.Message)
	assert.Equal(t, 2*time.Second, cfg.HTTPRetry.RetryDelay)
	assert.Equal(t, PublisherAPIv1, cfg.Publisher.APIVersion)
	assert.Equal(t, StateBackendFile, cfg.State.Backend)
	assert.Empty(t, cfg.Campaigns)
}

func TestLoadWithFile_Full(t *testing.T) {
	path := writeConfig(t, `{
		"debug": true,
		"http_retry": {"max_retries": 5, "retry_delay": "500ms", "max_retry_delay": "10s"},
		"publisher": {"api_version": "2"},
		"state": {"backend": "redis", "redis_url": "redis://localhost:6379/2"},
		"campaigns": [
			{
				"id": "iraq-daily",
				"title": "العراق",
				"products_file": "data/products.json",
				"strategy": "random",
				"scheduler": {"runnable": true, "time_spec": "0 0 */3 * * *"}
			},
			{"id": "weekly", "products_file": "data/weekly.json"}
		],
		"chatbot": {"typing_delay": "1s"},
		"notifiers": {"telegram": {"enabled": true, "bot_token": "`+validBotToken+`", "chat_id": 42}}
	}`)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 5, cfg.HTTPRetry.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.HTTPRetry.RetryDelay)
	assert.Equal(t, PublisherAPIv2, cfg.Publisher.APIVersion)
	assert.Equal(t, "redis://localhost:6379/2", cfg.State.RedisURL)
	assert.Equal(t, time.Second, cfg.Chatbot.TypingDelay)
	assert.Equal(t, int64(42), cfg.Notifiers.Telegram.ChatID)

	require.Len(t, cfg.Campaigns, 2)
	daily, ok := cfg.Campaign("iraq-daily")
	require.True(t, ok)
	assert.Equal(t, StrategyRandom, daily.EffectiveStrategy())
	assert.Equal(t, PersistBeforeSend, daily.EffectivePersistOrder())

	weekly, ok := cfg.Campaign("weekly")
	require.True(t, ok)
	assert.Equal(t, StrategySequential, weekly.EffectiveStrategy())

	_, ok = cfg.Campaign("missing")
	assert.False(t, ok)
}

func TestLoadWithFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, `{"api": {"enabled": true, "listen_port": 8080}}`)
	t.Setenv("STORE_PROMOTER_API__LISTEN_PORT", "9090")
	t.Setenv("STORE_PROMOTER_HTTP_RETRY__MAX_RETRIES", "1")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.ListenPort)
	assert.Equal(t, 1, cfg.HTTPRetry.MaxRetries)
}

func TestLoadWithFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantType apperrors.ErrorType
		contains string
	}{
		{
			name:     "JSON 문법 오류",
			content:  `{"debug": tru`,
			wantType: apperrors.InvalidInput,
		},
		{
			name:     "알 수 없는 키",
			content:  `{"unknown_section": 1}`,
			wantType: apperrors.InvalidInput,
		},
		{
			name:     "중복 캠페인 ID",
			content:  `{"campaigns": [{"id": "a", "products_file": "x"}, {"id": "a", "products_file": "y"}]}`,
			wantType: apperrors.InvalidInput,
			contains: "중복",
		},
		{
			name:     "잘못된 캠페인 ID",
			content:  `{"campaigns": [{"id": "Bad ID", "products_file": "x"}]}`,
			wantType: apperrors.InvalidInput,
			contains: "캠페인 ID",
		},
		{
			name:     "잘못된 Cron 표현식",
			content:  `{"campaigns": [{"id": "a", "products_file": "x", "scheduler": {"runnable": true, "time_spec": "every day"}}]}`,
			wantType: apperrors.InvalidInput,
			contains: "time_spec",
		},
		{
			name:     "비활성 스케줄의 Cron 표현식은 검사하지 않음",
			content:  `{"campaigns": [{"id": "a", "products_file": "x", "scheduler": {"runnable": false, "time_spec": "every day"}}]}`,
		},
		{
			name:     "Redis 주소 누락",
			content:  `{"state": {"backend": "redis"}}`,
			wantType: apperrors.InvalidInput,
		},
		{
			name:     "잘못된 Redis 주소",
			content:  `{"state": {"backend": "redis", "redis_url": "localhost"}}`,
			wantType: apperrors.InvalidInput,
			contains: "Redis",
		},
		{
			name:     "잘못된 텔레그램 토큰",
			content:  `{"notifiers": {"telegram": {"enabled": true, "bot_token": "abc", "chat_id": 1}}}`,
			wantType: apperrors.InvalidInput,
			contains: "텔레그램",
		},
		{
			name:     "상대 경로 BaseURL",
			content:  `{"message": {"base_url": "/products/"}}`,
			wantType: apperrors.InvalidInput,
			contains: "base_url",
		},
		{
			name:     "와일드카드와 다른 Origin 혼용",
			content:  `{"api": {"enabled": true, "cors": {"allow_origins": ["*", "https://example.com"]}}}`,
			wantType: apperrors.InvalidInput,
			contains: "와일드카드",
		},
		{
			name:     "비활성 API는 검사하지 않음",
			content:  `{"api": {"enabled": false, "listen_port": 0}}`,
		},
		{
			name:     "지원하지 않는 API 버전",
			content:  `{"publisher": {"api_version": "3"}}`,
			wantType: apperrors.InvalidInput,
		},
		{
			name:     "중복 키워드",
			content:  `{"chatbot": {"keywords": [{"keyword": "a", "reply": "1"}, {"keyword": "a", "reply": "2"}]}}`,
			wantType: apperrors.InvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithFile(writeConfig(t, tt.content))
			if tt.wantType == apperrors.Unknown {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.wantType), "err: %v", err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoadWithFile_NotFound(t *testing.T) {
	_, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

func TestVerifyRecommendations(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, cfg.VerifyRecommendations())

	cfg.API.Enabled = true
	cfg.API.ListenPort = 80
	cfg.State.Backend = StateBackendMemory
	cfg.Campaigns = []CampaignConfig{{ID: "a", ProductsFile: "x"}}

	warnings := cfg.VerifyRecommendations()
	assert.Len(t, warnings, 4)
}
