package rotation

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darkkaiser/store-promoter/internal/pkg/atomicfile"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/pkg/concurrency"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
)

const (
	defaultStateDir = "data"

	// 이 시간보다 오래된 임시 파일만 이전 실행의 잔재로 보고 지웁니다.
	staleTempAge = time.Hour
)

// FileStore 캠페인마다 JSON 파일 하나에 상태를 저장합니다.
//
// 쓰기는 임시 파일을 거쳐 원자적으로 교체되므로 저장 도중 중단되어도 이전 상태가 남습니다.
// 같은 프로세스 안의 동시 접근은 파일별 잠금으로 직렬화됩니다.
type FileStore struct {
	dir   string
	locks *concurrency.KeyedMutex[string]
}

var _ Store = (*FileStore)(nil)

// NewFileStore dir(비어 있으면 "data")을 만들고, 이전 실행에서 남은 오래된 임시 파일을 정리합니다.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = defaultStateDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "상태 디렉토리 경로를 확인할 수 없습니다 (dir=%s)", dir)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "상태 디렉토리를 만들 수 없습니다 (dir=%s)", absDir)
	}

	s := &FileStore{
		dir:   absDir,
		locks: concurrency.NewKeyedMutex[string](),
	}

	removed, err := atomicfile.CleanupStale(absDir, staleTempAge)
	logger := applog.WithComponentAndFields(component, applog.Fields{"dir": absDir})
	if err != nil {
		logger.WithError(err).Warn("임시 파일 정리 실패")
	} else if len(removed) > 0 {
		logger.WithField("removed", removed).Info("이전 실행에서 남은 임시 파일을 정리했습니다")
	}

	return s, nil
}

// Dir 상태 파일이 저장되는 절대 경로입니다.
func (s *FileStore) Dir() string {
	return s.dir
}

// Load 상태 파일을 읽습니다. 파일이 없으면 Initial()을 반환합니다.
func (s *FileStore) Load(_ context.Context, key string) (State, error) {
	path, err := s.resolvePath(key)
	if err != nil {
		return State{}, err
	}

	var data []byte
	err = s.locks.WithLock(lockKey(path), func() error {
		var readErr error
		data, readErr = os.ReadFile(path)
		return readErr
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Initial(), nil
		}
		return State{}, apperrors.Wrapf(err, apperrors.System, "순환 상태 파일을 읽을 수 없습니다 (file=%s)", path)
	}

	return decodeState(data, path)
}

// Save 상태를 원자적으로 저장합니다.
func (s *FileStore) Save(_ context.Context, key string, st State) error {
	path, err := s.resolvePath(key)
	if err != nil {
		return err
	}

	data, err := encodeState(st)
	if err != nil {
		return err
	}

	return s.locks.WithLock(lockKey(path), func() error {
		return atomicfile.WriteFile(path, data, 0644)
	})
}

// Close 파일 저장소는 해제할 자원이 없습니다.
// Health 상태 디렉토리에 접근할 수 있는지 확인합니다.
func (s *FileStore) Health(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.System, "상태 디렉토리에 접근할 수 없습니다 (dir=%s)", s.dir)
	}
	if !info.IsDir() {
		return apperrors.Newf(apperrors.System, "상태 경로가 디렉토리가 아닙니다 (dir=%s)", s.dir)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// resolvePath 키로 만든 경로가 상태 디렉토리를 벗어나지 않는지 확인합니다.
func (s *FileStore) resolvePath(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}

	path := filepath.Clean(filepath.Join(s.dir, stateFilename(key)))

	rel, err := filepath.Rel(s.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		applog.WithComponentAndFields(component, applog.Fields{
			"key":  key,
			"dir":  s.dir,
			"path": path,
		}).Error("상태 파일 경로 생성 차단: 디렉토리 이탈 시도")

		return "", apperrors.Newf(apperrors.InvalidInput, "허용되지 않는 순환 상태 키입니다: '%s'", key)
	}

	return path, nil
}

// lockKey 대소문자를 구분하지 않는 파일 시스템에서도 같은 파일은 같은 잠금을 쓰도록 합니다.
func lockKey(path string) string {
	return strings.ToLower(path)
}
