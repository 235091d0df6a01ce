package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 디스크, 네트워크 등 실행 환경의 오류
	System

	// InvalidInput 잘못된 입력값 또는 설정값
	InvalidInput

	// NotFound 요청한 대상(캠페인, 파일 등)을 찾을 수 없음
	NotFound

	// Conflict 동일한 캠페인이 이미 실행 중인 경우 등 상태 충돌
	Conflict

	// ParsingFailed JSON, HTML 등 데이터 해석 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 원격 서비스에 연결할 수 없음
	Unavailable

	// MissingCredential 게시에 필요한 인증 정보(API 키, 액세스 토큰 등)가 누락됨
	MissingCredential

	// RemoteRejection 원격 게시 API가 성공이 아닌 상태 코드로 요청을 거부함
	RemoteRejection

	// LocalFault 로컬 상품 목록이나 순환 상태 파일이 손상되어 읽을 수 없음
	LocalFault
)

var errorTypeNames = [...]string{
	Unknown:           "Unknown",
	Internal:          "Internal",
	System:            "System",
	InvalidInput:      "InvalidInput",
	NotFound:          "NotFound",
	Conflict:          "Conflict",
	ParsingFailed:     "ParsingFailed",
	Timeout:           "Timeout",
	Unavailable:       "Unavailable",
	MissingCredential: "MissingCredential",
	RemoteRejection:   "RemoteRejection",
	LocalFault:        "LocalFault",
}

// String 에러 타입의 이름을 반환합니다.
func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
