package rotation

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "store-promoter"

// redisClient RedisStore가 사용하는 go-redis 명령 집합입니다.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisStore 여러 인스턴스가 상태를 공유해야 할 때 사용하는 Redis 저장소입니다.
// 키는 "{prefix}:rotation:{캠페인 ID}" 형식이며 값은 파일 저장소와 같은 JSON입니다.
type RedisStore struct {
	client redisClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore redis://host:port/db 형식의 주소로 연결하고 PING으로 연결을 확인합니다.
func NewRedisStore(ctx context.Context, rawURL, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "Redis 주소 형식이 올바르지 않습니다")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "Redis에 연결할 수 없습니다 (addr=%s)", opts.Addr)
	}

	return newRedisStore(client, prefix), nil
}

func newRedisStore(client redisClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":rotation:" + id
}

// Load 키가 없으면 Initial()을 반환합니다.
func (s *RedisStore) Load(ctx context.Context, key string) (State, error) {
	if err := checkKey(key); err != nil {
		return State{}, err
	}

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Initial(), nil
		}
		return State{}, apperrors.Wrapf(err, apperrors.Unavailable, "Redis에서 순환 상태를 읽을 수 없습니다 (key=%s)", s.key(key))
	}

	return decodeState(data, s.key(key))
}

// Save 만료 없이 저장합니다.
func (s *RedisStore) Save(ctx context.Context, key string, st State) error {
	if err := checkKey(key); err != nil {
		return err
	}

	data, err := encodeState(st)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return apperrors.Wrapf(err, apperrors.Unavailable, "Redis에 순환 상태를 저장할 수 없습니다 (key=%s)", s.key(key))
	}
	return nil
}

// Health PING으로 연결 상태를 확인합니다.
func (s *RedisStore) Health(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "Redis PING 실패")
	}
	return nil
}

// Close Redis 연결을 닫습니다.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
