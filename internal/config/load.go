package config

import (
	"errors"
	"io/fs"
	"strings"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load 기본 설정 파일(DefaultFilename)을 읽습니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile filename의 설정을 기본값, 환경 변수와 병합하여 검증된 AppConfig를 반환합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrapf(err, apperrors.NotFound, "설정 파일을 찾을 수 없습니다: '%s'", filename)
		}
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일을 해석할 수 없습니다: '%s'", filename)
	}

	// 예: STORE_PROMOTER_API__LISTEN_PORT → api.listen_port
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var cfg AppConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			TagName:          "json",
			ErrorUnused:      true, // 오타가 난 키를 조용히 무시하지 않습니다.
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일('%s')의 값을 해석할 수 없습니다", filename)
	}

	if err := cfg.validate(newValidator()); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일('%s')의 유효성 검증에 실패했습니다", filename)
	}

	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
