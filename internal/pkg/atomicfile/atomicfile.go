// Package atomicfile 중간 상태가 노출되지 않는 파일 쓰기를 제공합니다.
//
// 데이터는 같은 디렉토리의 임시 파일에 기록되고 fsync 된 뒤 rename으로 교체되므로,
// 쓰기 도중 프로세스가 종료되어도 대상 파일은 이전 내용 또는 새 내용 중 하나만 갖습니다.
package atomicfile

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
)

// TempSuffix WriteFile이 만드는 임시 파일의 확장자입니다.
const TempSuffix = ".tmp"

const (
	renameMaxRetries = 5
	renameRetryDelay = 10 * time.Millisecond
)

// WriteFile data를 path에 원자적으로 기록합니다.
// 부모 디렉토리가 없으면 생성합니다.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.Wrapf(err, apperrors.System, "디렉토리 생성 실패 (dir=%s)", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*"+TempSuffix)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.System, "임시 파일 생성 실패 (dir=%s)", dir)
	}
	tmpPath := tmp.Name()

	// Close가 Remove보다 먼저 실행되어야 Windows에서도 정리됩니다.
	defer os.Remove(tmpPath)
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return apperrors.Wrap(err, apperrors.System, "임시 파일 쓰기 실패")
	}
	if err := tmp.Sync(); err != nil {
		return apperrors.Wrap(err, apperrors.System, "임시 파일 동기화 실패")
	}
	if err := tmp.Chmod(perm); err != nil {
		return apperrors.Wrap(err, apperrors.System, "임시 파일 권한 설정 실패")
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(err, apperrors.System, "임시 파일 닫기 실패")
	}

	if err := renameWithRetry(tmpPath, path); err != nil {
		return apperrors.Wrapf(err, apperrors.System, "파일 교체 실패 (path=%s)", path)
	}

	// 디렉토리 엔트리까지 기록해야 전원 유실 후에도 rename 결과가 남습니다.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}

// renameWithRetry 백신, 인덱서 등이 파일을 잠시 점유하는 환경에서 rename을 몇 차례 재시도합니다.
func renameWithRetry(oldPath, newPath string) error {
	var lastErr error
	for range renameMaxRetries {
		if lastErr = os.Rename(oldPath, newPath); lastErr == nil {
			return nil
		}
		time.Sleep(renameRetryDelay)
	}

	return lastErr
}

// CleanupStale dir에서 olderThan보다 오래된 WriteFile 임시 파일을 삭제하고, 삭제한 경로를 반환합니다.
// 최근 파일은 다른 프로세스가 쓰는 중일 수 있으므로 남겨둡니다.
func CleanupStale(dir string, olderThan time.Duration) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.System, "디렉토리 조회 실패 (dir=%s)", dir)
	}

	threshold := time.Now().Add(-olderThan)

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, TempSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		path := filepath.Join(dir, name)
		if err := os.Remove(path); err == nil {
			removed = append(removed, path)
		}
	}

	return removed, nil
}
