package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/joho/godotenv"
)

// 게시 API 자격 증명 환경 변수
const (
	EnvAPIKey            = "TWITTER_API_KEY"
	EnvAPISecret         = "TWITTER_API_SECRET"
	EnvAccessToken       = "TWITTER_ACCESS_TOKEN"
	EnvAccessTokenSecret = "TWITTER_ACCESS_TOKEN_SECRET"
)

// Credentials OAuth 1.0a 서명에 필요한 네 가지 값입니다.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Missing 비어 있는 항목의 환경 변수 이름을 반환합니다.
func (c Credentials) Missing() []string {
	var missing []string
	for _, item := range []struct {
		name  string
		value string
	}{
		{EnvAPIKey, c.APIKey},
		{EnvAPISecret, c.APISecret},
		{EnvAccessToken, c.AccessToken},
		{EnvAccessTokenSecret, c.AccessTokenSecret},
	} {
		if strings.TrimSpace(item.value) == "" {
			missing = append(missing, item.name)
		}
	}

	return missing
}

// LoadCredentials envFiles(.env 형식)을 먼저 읽은 뒤 환경 변수에서 자격 증명을 가져옵니다.
// 이미 설정된 환경 변수는 파일 값으로 덮어쓰지 않으며, 존재하지 않는 파일은 건너뜁니다.
func LoadCredentials(envFiles ...string) (Credentials, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, apperrors.Wrapf(err, apperrors.InvalidInput, "환경 파일을 읽을 수 없습니다: '%s'", f)
		}
	}

	return Credentials{
		APIKey:            strings.TrimSpace(os.Getenv(EnvAPIKey)),
		APISecret:         strings.TrimSpace(os.Getenv(EnvAPISecret)),
		AccessToken:       strings.TrimSpace(os.Getenv(EnvAccessToken)),
		AccessTokenSecret: strings.TrimSpace(os.Getenv(EnvAccessTokenSecret)),
	}, nil
}
