package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCORSOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		wantErr bool
	}{
		{name: "와일드카드", origin: "*"},
		{name: "HTTPS 도메인", origin: "https://iraq-ninja-store.arabsad.com"},
		{name: "포트가 있는 localhost", origin: "http://localhost:3000"},
		{name: "IPv4", origin: "http://192.168.0.10:8080"},
		{name: "IPv6", origin: "http://[::1]:8080"},
		{name: "앞뒤 공백", origin: "  https://example.com  "},

		{name: "빈 문자열", origin: "", wantErr: true},
		{name: "후행 슬래시", origin: "https://example.com/", wantErr: true},
		{name: "경로", origin: "https://example.com/api", wantErr: true},
		{name: "쿼리", origin: "https://example.com?a=1", wantErr: true},
		{name: "Fragment", origin: "https://example.com#top", wantErr: true},
		{name: "UserInfo", origin: "https://user:pw@example.com", wantErr: true},
		{name: "ftp 스킴", origin: "ftp://example.com", wantErr: true},
		{name: "스킴 없음", origin: "example.com", wantErr: true},
		{name: "포트 범위 초과", origin: "http://localhost:70000", wantErr: true},
		{name: "숫자 TLD", origin: "http://example.123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCORSOrigin(tt.origin)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHTTPURL(t *testing.T) {
	assert.NoError(t, ValidateHTTPURL("https://iraq-ninja-store.arabsad.com/products/"))
	assert.NoError(t, ValidateHTTPURL("http://localhost:8080/shop?page=2"))

	assert.Error(t, ValidateHTTPURL(""))
	assert.Error(t, ValidateHTTPURL("/products/a.html"))
	assert.Error(t, ValidateHTTPURL("mailto:shop@example.com"))
}

func TestValidateHostname(t *testing.T) {
	tests := []struct {
		host    string
		wantErr bool
	}{
		{host: "localhost"},
		{host: "10.0.0.1"},
		{host: "a-b.example.com"},
		{host: "xn--mgbaal8b0b9b.com"},
		{host: "-bad.com", wantErr: true},
		{host: "bad-.com", wantErr: true},
		{host: "a..com", wantErr: true},
		{host: "under_score.com", wantErr: true},
		{host: strings.Repeat("a", 64) + ".com", wantErr: true},
		{host: strings.Repeat("abcdefghi.", 26) + "com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			err := ValidateHostname(tt.host)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(65536))
}
