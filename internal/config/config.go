// Package config 애플리케이션 설정(store-promoter.json)과 게시 자격 증명을 로드하고 검증합니다.
//
// 로드 우선순위 (뒤가 앞을 덮어씁니다):
//  1. Defaults()가 반환하는 기본값
//  2. JSON 설정 파일
//  3. STORE_PROMOTER_ 접두사 환경 변수 (계층은 "__"로 구분, 예: STORE_PROMOTER_API__LISTEN_PORT=8080)
//
// 게시 API 자격 증명은 설정 파일에 두지 않으며 LoadCredentials로 환경 변수에서만 읽습니다.
package config

import (
	"time"
)

const (
	// AppName 로그 파일명, 환경 변수 접두사 등에 사용되는 애플리케이션 식별자입니다.
	AppName = "store-promoter"

	// DefaultFilename 경로가 주어지지 않았을 때 읽는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정 값을 덮어쓰는 환경 변수의 접두사입니다.
	EnvPrefix = "STORE_PROMOTER_"
)

// 캠페인 상품 선택 전략
const (
	StrategySequential = "sequential"
	StrategyRandom     = "random"
)

// 회전 상태 저장 시점
const (
	PersistBeforeSend = "before_send"
	PersistAfterSend  = "after_send"
)

// 회전 상태 저장소 종류
const (
	StateBackendFile   = "file"
	StateBackendRedis  = "redis"
	StateBackendMemory = "memory"
)

// 게시 API 버전
const (
	PublisherAPIv1 = "1.1"
	PublisherAPIv2 = "2"
)

// AppConfig 설정 파일 전체를 나타내는 최상위 구조체입니다.
type AppConfig struct {
	Debug     bool             `json:"debug"`
	Log       LogConfig        `json:"log"`
	HTTPRetry HTTPRetryConfig  `json:"http_retry"`
	Publisher PublisherConfig  `json:"publisher"`
	Message   MessageConfig    `json:"message"`
	State     StateConfig      `json:"state"`
	Campaigns []CampaignConfig `json:"campaigns" validate:"unique=ID"`
	Chatbot   ChatbotConfig    `json:"chatbot"`
	Notifiers NotifierConfig   `json:"notifiers"`
	API       APIConfig        `json:"api"`
}

// Campaign id에 해당하는 캠페인 설정을 찾습니다.
func (c *AppConfig) Campaign(id string) (CampaignConfig, bool) {
	for _, campaign := range c.Campaigns {
		if campaign.ID == id {
			return campaign, true
		}
	}
	return CampaignConfig{}, false
}

// LogConfig 로그 파일 위치와 형식입니다.
type LogConfig struct {
	Dir    string `json:"dir"`
	Level  string `json:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `json:"format" validate:"oneof=text json"`
}

// HTTPRetryConfig 멱등 요청(스토어프론트 수집 등)의 재시도 정책입니다. 게시 요청에는 적용되지 않습니다.
type HTTPRetryConfig struct {
	MaxRetries    int           `json:"max_retries" validate:"min=0,max=10"`
	RetryDelay    time.Duration `json:"retry_delay" validate:"gt=0"`
	MaxRetryDelay time.Duration `json:"max_retry_delay" validate:"gtefield=RetryDelay"`
}

// PublisherConfig 게시 API 호출 설정입니다.
type PublisherConfig struct {
	APIVersion string        `json:"api_version" validate:"oneof=1.1 2"`
	Endpoint   string        `json:"endpoint" validate:"omitempty,url"`  // 비어 있으면 버전별 기본 주소
	StatusURL  string        `json:"status_url" validate:"required,url"` // 게시물 주소 접두사
	Timeout    time.Duration `json:"timeout" validate:"gt=0"`
}

// MessageConfig 게시 메시지 구성 요소입니다.
type MessageConfig struct {
	BaseURL     string   `json:"base_url" validate:"required,http_url"`
	RegionTag   string   `json:"region_tag"`
	CityTags    []string `json:"city_tags"`
	SKUPrefixes []string `json:"sku_prefixes" validate:"dive,len=1,alpha"`
	MaxLength   int      `json:"max_length" validate:"min=0"`
}

// StateConfig 캠페인별 회전 상태 저장소입니다.
type StateConfig struct {
	Backend     string `json:"backend" validate:"oneof=file redis memory"`
	Dir         string `json:"dir" validate:"required_if=Backend file"`
	RedisURL    string `json:"redis_url" validate:"required_if=Backend redis,omitempty,redis_url"`
	RedisPrefix string `json:"redis_prefix"`
}

// CampaignConfig 하나의 상품 카탈로그를 순환 게시하는 단위입니다.
type CampaignConfig struct {
	ID              string          `json:"id" validate:"required,campaign_id"`
	Title           string          `json:"title"`
	ProductsFile    string          `json:"products_file" validate:"required"`
	Strategy        string          `json:"strategy" validate:"omitempty,oneof=sequential random"`
	PersistOrder    string          `json:"persist_order" validate:"omitempty,oneof=before_send after_send"`
	MaxLength       int             `json:"max_length" validate:"min=0"` // 0이면 message.max_length 사용
	Scheduler       SchedulerConfig `json:"scheduler"`
	NotifyOnSuccess bool            `json:"notify_on_success"`
}

// EffectiveStrategy 비어 있으면 sequential입니다.
func (c CampaignConfig) EffectiveStrategy() string {
	if c.Strategy == "" {
		return StrategySequential
	}
	return c.Strategy
}

// EffectivePersistOrder 비어 있으면 before_send입니다.
func (c CampaignConfig) EffectivePersistOrder() string {
	if c.PersistOrder == "" {
		return PersistBeforeSend
	}
	return c.PersistOrder
}

// SchedulerConfig 6필드(초 포함) Cron 표현식 기반 실행 설정입니다.
type SchedulerConfig struct {
	Runnable bool   `json:"runnable"`
	TimeSpec string `json:"time_spec"`
}

// ChatbotConfig 고객 문의 자동 응답 설정입니다.
type ChatbotConfig struct {
	Enabled         bool            `json:"enabled"`
	ProductsFile    string          `json:"products_file" validate:"required_if=Enabled true"`
	Keywords        []KeywordConfig `json:"keywords" validate:"unique=Keyword,dive"`
	DefaultReply    string          `json:"default_reply" validate:"required"`
	GreetingKeyword string          `json:"greeting_keyword"`
	TypingDelay     time.Duration   `json:"typing_delay" validate:"min=0"`
}

// KeywordConfig 키워드 응답 표의 한 행입니다. 목록 순서가 우선순위입니다.
type KeywordConfig struct {
	Keyword string `json:"keyword" validate:"required"`
	Reply   string `json:"reply" validate:"required"`
}

// NotifierConfig 관리자 알림과 메신저 챗봇 채널입니다.
type NotifierConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig 텔레그램 봇 설정입니다.
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
	Chatbot  bool   `json:"chatbot"` // 봇에게 온 메시지에 챗봇 응답을 보낼지 여부
}

// APIConfig REST/WebSocket 서버 설정입니다.
type APIConfig struct {
	Enabled        bool            `json:"enabled"`
	ListenPort     int             `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer      bool            `json:"tls_server"`
	TLSCertFile    string          `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile     string          `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	AppKey         string          `json:"app_key"`
	SiteDir        string          `json:"site_dir" validate:"omitempty,dir"`
	RequestTimeout time.Duration   `json:"request_timeout" validate:"gt=0"`
	BodyLimit      string          `json:"body_limit" validate:"required"`
	RateLimit      RateLimitConfig `json:"rate_limit"`
	CORS           CORSConfig      `json:"cors"`
}

// RateLimitConfig 클라이언트 IP별 요청 제한입니다.
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gt=0"`
	Burst             int     `json:"burst" validate:"min=1"`
}

// CORSConfig 허용할 Origin 목록입니다. "*"는 단독으로만 사용할 수 있습니다.
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}
