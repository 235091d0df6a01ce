package log

import (
	"fmt"
	"os"
)

// 로그 출력 형식
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options 로거 설정을 위한 구조체입니다.
type Options struct {
	Name   string // 로그 파일명 생성에 사용될 애플리케이션 식별자
	Dir    string // 로그 파일이 저장될 디렉토리 경로 (빈 값: "logs")
	Level  Level  // 로그 레벨 (0: InfoLevel로 간주)
	Format string // 출력 형식 (FormatText 또는 FormatJSON, 빈 값: FormatText)

	MaxAge     int // 오래된 로그 삭제 기준일 (일 단위, 0: 삭제 안 함)
	MaxSizeMB  int // 로그 파일 최대 크기 (MB, 0: 기본값 사용)
	MaxBackups int // 최대 백업 파일 수 (0: 기본값 사용)

	EnableCriticalLog bool // ERROR 이상 로그를 *.critical.log 파일에 별도로 남길지 여부
	EnableVerboseLog  bool // DEBUG 이하 로그를 *.verbose.log 파일로 분리할지 여부
	EnableConsoleLog  bool // 표준 출력에도 로그를 남길지 여부

	// ReportCaller 로그를 호출한 함수와 라인 번호를 함께 기록할지 여부
	ReportCaller bool

	// CallerPathPrefix 호출자 함수 경로에서 잘라낼 접두사
	// 예: "github.com/darkkaiser/store-promoter" → ".../internal/rotation.Advance(line:42)"
	CallerPathPrefix string
}

// Validate Options의 필드 값이 유효한지 검증합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	switch opts.Format {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("지원하지 않는 로그 형식입니다: %s", opts.Format)
	}

	if opts.MaxAge < 0 {
		return fmt.Errorf("MaxAge는 0 이상이어야 합니다: %d", opts.MaxAge)
	}
	if opts.MaxSizeMB < 0 {
		return fmt.Errorf("MaxSizeMB는 0 이상이어야 합니다: %d", opts.MaxSizeMB)
	}
	if opts.MaxBackups < 0 {
		return fmt.Errorf("MaxBackups는 0 이상이어야 합니다: %d", opts.MaxBackups)
	}

	return nil
}
