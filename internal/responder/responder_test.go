package responder

import (
	"strings"
	"sync"
	"testing"

	"github.com/darkkaiser/store-promoter/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDefaultReply = "عذراً، لم أفهم سؤالك."
	testPriceReply   = `أسعارنا تتراوح من 73,000 إلى 100,000 دينار عراقي حسب المنتج. استخدم زر "شاهد التفاصيل" لمعرفة سعر المنتج بالضبط.`
)

func newTestResponder(products ...catalog.Product) *Responder {
	if products == nil {
		products = []catalog.Product{
			{Title: "ميزان الطعام", SKU: "A.001247", Price: "76,030", URL: "/products/ميزان-الطعام-a001247.html"},
			{Title: "حزام الرقبة المغناطيسي", SKU: "A.001299", Price: "76,500", URL: "/products/حزام-الرقبة-المغناطيسي-a001299.html"},
			{Title: "Smart Watch", SKU: "G.000010", Price: ""},
		}
	}

	return New(Options{
		Products: products,
		Keywords: []Keyword{
			{Keyword: "سعر", Reply: testPriceReply},
			{Keyword: "توصيل", Reply: "نوفر توصيل مجاني"},
			{Keyword: "Hello", Reply: "hi there"},
			{Keyword: "  ", Reply: "무시되어야 합니다"},
		},
		DefaultReply: testDefaultReply,
	})
}

func TestAnswer_ProductBySKU(t *testing.T) {
	r := newTestResponder()

	a := r.Answer("A.001247")

	require.Equal(t, KindProduct, a.Kind)
	require.Len(t, a.Products, 1)
	assert.Equal(t, "ميزان الطعام", a.Products[0].Title)

	want := "وجدت 1 منتج:\n\n" +
		"🛍️ ميزان الطعام\n" +
		"💰 السعر: 76,030 د.ع\n" +
		"📦 SKU: A.001247\n" +
		"🔗 <a href=\"/products/ميزان-الطعام-a001247.html\" target=\"_blank\">شاهد التفاصيل</a>\n\n"
	assert.Equal(t, want, a.Reply)
}

func TestAnswer_ProductByTitle_CatalogOrder(t *testing.T) {
	r := newTestResponder()

	a := r.Answer("  ا  ")

	require.Equal(t, KindProduct, a.Kind)
	require.Len(t, a.Products, 2)
	assert.Equal(t, "A.001247", a.Products[0].SKU)
	assert.Equal(t, "A.001299", a.Products[1].SKU)
	assert.True(t, strings.HasPrefix(a.Reply, "وجدت 2 منتج:\n\n"))
}

func TestAnswer_CaseFolding(t *testing.T) {
	r := newTestResponder()

	for _, input := range []string{"smart", "SMART WATCH", "g.000010", "a.001299"} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, KindProduct, r.Answer(input).Kind)
		})
	}
}

func TestAnswer_EmptyPriceAndDerivedURL(t *testing.T) {
	r := newTestResponder()

	a := r.Answer("Smart Watch")

	require.Len(t, a.Products, 1)
	assert.Equal(t, "/products/000010.html", a.Products[0].URL)
	assert.NotContains(t, a.Reply, "السعر")
	assert.Contains(t, a.Reply, `href="/products/000010.html"`)
}

func TestAnswer_EscapesHTML(t *testing.T) {
	r := newTestResponder(catalog.Product{Title: "<b>bold</b> & co", SKU: "A.1", URL: "/p?a=1&b=2"})

	a := r.Answer("bold")

	require.Equal(t, KindProduct, a.Kind)
	assert.Contains(t, a.Reply, "&lt;b&gt;bold&lt;/b&gt; &amp; co")
	assert.Contains(t, a.Reply, `href="/p?a=1&amp;b=2"`)
}

func TestAnswer_Keyword(t *testing.T) {
	r := newTestResponder()

	tests := []struct {
		input       string
		wantKeyword string
		wantReply   string
	}{
		{input: "سعر", wantKeyword: "سعر", wantReply: testPriceReply},
		{input: "كم سعر التوصيل؟", wantKeyword: "سعر", wantReply: testPriceReply},
		{input: "هل يوجد توصيل", wantKeyword: "توصيل", wantReply: "نوفر توصيل مجاني"},
		{input: "HELLO there", wantKeyword: "Hello", wantReply: "hi there"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a := r.Answer(tt.input)

			assert.Equal(t, KindKeyword, a.Kind)
			assert.Equal(t, tt.wantKeyword, a.Keyword)
			assert.Equal(t, tt.wantReply, a.Reply)
			assert.Equal(t, tt.wantReply, r.Respond(tt.input))
		})
	}
}

func TestAnswer_NoDiacriticFolding(t *testing.T) {
	r := newTestResponder()

	// 발음 부호가 붙은 입력은 부호 없는 키워드와 일치하지 않습니다.
	a := r.Answer("سِعر")

	assert.Equal(t, KindDefault, a.Kind)
}

func TestAnswer_Default(t *testing.T) {
	r := newTestResponder()

	for _, input := range []string{"", "   \n\t", "xyz-unknown"} {
		a := r.Answer(input)
		assert.Equal(t, KindDefault, a.Kind, "입력: %q", input)
		assert.Equal(t, testDefaultReply, a.Reply)
		assert.Empty(t, a.Products)
	}
}

func TestAnswer_ProductBeforeKeyword(t *testing.T) {
	r := newTestResponder(catalog.Product{Title: "ساعة توصيل", SKU: "A.9", URL: "/p"})

	assert.Equal(t, KindProduct, r.Answer("توصيل").Kind)
}

func TestResponder_Concurrent(t *testing.T) {
	r := newTestResponder()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				assert.Equal(t, KindProduct, r.Answer("smart").Kind)
			}
		}()
	}
	wg.Wait()
}

func TestPlainText(t *testing.T) {
	const base = "https://iraq-ninja-store.arabsad.com/products/"

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{
			name:     "상대 링크",
			fragment: "🔗 <a href=\"/products/ميزان-الطعام-a001247.html\" target=\"_blank\">شاهد التفاصيل</a>\n\n",
			want:     "🔗 شاهد التفاصيل: https://iraq-ninja-store.arabsad.com/products/ميزان-الطعام-a001247.html",
		},
		{
			name:     "절대 링크",
			fragment: `<a href="https://wa.me/201110760081">واتساب</a>`,
			want:     "واتساب: https://wa.me/201110760081",
		},
		{
			name:     "엔티티 복원",
			fragment: "🛍️ &lt;b&gt; &amp; co\n",
			want:     "🛍️ <b> & co",
		},
		{
			name:     "일반 텍스트",
			fragment: "مرحباً بك! 👋\n",
			want:     "مرحباً بك! 👋",
		},
		{
			name:     "href 없는 링크",
			fragment: `<a>نص</a>`,
			want:     "نص",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.fragment, base))
		})
	}
}

func TestPlainText_ProductReply(t *testing.T) {
	r := newTestResponder()

	text := PlainText(r.Respond("A.001299"), "https://iraq-ninja-store.arabsad.com")

	assert.Contains(t, text, "📦 SKU: A.001299")
	assert.Contains(t, text, "شاهد التفاصيل: https://iraq-ninja-store.arabsad.com/products/حزام-الرقبة-المغناطيسي-a001299.html")
	assert.NotContains(t, text, "<a")
}
