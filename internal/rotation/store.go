package rotation

import (
	"context"
	"encoding/json"
	"strings"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
)

const component = "rotation.store"

// Store 캠페인별 순환 상태 저장소입니다. key는 캠페인 ID입니다.
type Store interface {
	// Load 저장된 상태를 반환합니다. 저장된 적이 없으면 Initial()을 반환합니다.
	Load(ctx context.Context, key string) (State, error)

	Save(ctx context.Context, key string, s State) error

	Close() error
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return apperrors.New(apperrors.InvalidInput, "순환 상태 키(캠페인 ID)가 비어 있습니다")
	}
	return nil
}

func encodeState(s State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "순환 상태 직렬화 실패")
	}
	return data, nil
}

func decodeState(data []byte, where string) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, apperrors.Wrapf(err, apperrors.LocalFault, "순환 상태가 손상되었습니다 (%s)", where)
	}
	return s, nil
}

// 저장소 종류
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// StoreOptions Open에 전달하는 저장소 설정입니다.
type StoreOptions struct {
	Backend     string
	Dir         string
	RedisURL    string
	RedisPrefix string
}

// Open 설정된 종류의 저장소를 엽니다. 빈 Backend는 file입니다.
func Open(ctx context.Context, opts StoreOptions) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL, opts.RedisPrefix)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 상태 저장소입니다: '%s'", opts.Backend)
	}
}
