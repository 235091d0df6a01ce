package config

import (
	"time"

	"github.com/darkkaiser/store-promoter/internal/composer"
)

// 기본 응답 문구. 스토어프론트 위젯과 동일한 문장을 사용합니다.
const (
	defaultReply = "عذراً، لم أفهم سؤالك. يمكنك:\n• سؤالي عن منتج معين\n• سؤالي عن الأسعار أو التوصيل\n• التواصل مع خدمة العملاء: https://wa.me/201110760081"

	defaultGreetingKeyword = "مرحبا"
)

// defaultKeywords 키워드 응답 표의 기본값입니다. 순서가 곧 우선순위입니다.
var defaultKeywords = []KeywordConfig{
	{Keyword: "سعر", Reply: `أسعارنا تتراوح من 73,000 إلى 100,000 دينار عراقي حسب المنتج. استخدم زر "شاهد التفاصيل" لمعرفة سعر المنتج بالضبط.`},
	{Keyword: "توصيل", Reply: "نوفر توصيل مجاني لجميع المحافظات العراقية! 🚚 اطلب الآن عبر واتساب."},
	{Keyword: "واتساب", Reply: "تواصل معنا عبر واتساب: https://wa.me/201110760081 📱"},
	{Keyword: "منتج", Reply: "لدينا أكثر من 300 منتج متنوع! ما المنتج الذي تبحث عنه؟"},
	{Keyword: "دفع", Reply: "الدفع عند الاستلام متاح لجميع المحافظات. يمكنك الطلب عبر واتساب."},
	{Keyword: "جودة", Reply: "جميع منتجاتنا أصلية ومضمونة بجودة عالية ✅"},
	{Keyword: "ضمان", Reply: "نوفر ضمان استرجاع واستبدال حسب سياسة المتجر."},
	{Keyword: "مرحبا", Reply: "مرحباً بك! 👋 كيف يمكنني مساعدتك؟"},
	{Keyword: "شكرا", Reply: "العفو! سعداء بخدمتك 😊"},
}

// Defaults 설정 파일에 없는 항목에 적용되는 기본값을 반환합니다.
// 호출할 때마다 새 값을 만들므로 반환값을 수정해도 안전합니다.
func Defaults() AppConfig {
	return AppConfig{
		Log: LogConfig{
			Dir:    "logs",
			Level:  "info",
			Format: "text",
		},
		HTTPRetry: HTTPRetryConfig{
			MaxRetries:    3,
			RetryDelay:    2 * time.Second,
			MaxRetryDelay: 30 * time.Second,
		},
		Publisher: PublisherConfig{
			APIVersion: PublisherAPIv1,
			StatusURL:  "https://twitter.com/i/web/status/",
			Timeout:    30 * time.Second,
		},
		Message: MessageConfig{
			BaseURL:     composer.DefaultBaseURL,
			RegionTag:   composer.DefaultRegionTag,
			CityTags:    append([]string(nil), composer.DefaultCityTags...),
			SKUPrefixes: append([]string(nil), composer.DefaultSKUPrefixes...),
		},
		State: StateConfig{
			Backend:     StateBackendFile,
			Dir:         "data",
			RedisPrefix: AppName,
		},
		Campaigns: []CampaignConfig{},
		Chatbot: ChatbotConfig{
			Enabled:         true,
			ProductsFile:    "data/products.json",
			Keywords:        append([]KeywordConfig(nil), defaultKeywords...),
			DefaultReply:    defaultReply,
			GreetingKeyword: defaultGreetingKeyword,
			TypingDelay:     500 * time.Millisecond,
		},
		API: APIConfig{
			ListenPort:     2443,
			RequestTimeout: 60 * time.Second,
			BodyLimit:      "128K",
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 5,
				Burst:             10,
			},
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
			},
		},
	}
}
