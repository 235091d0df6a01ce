// Package validation 설정 파일과 API 요청으로 들어오는 네트워크 관련 값(Origin, 호스트명, 포트, URL)을 검사합니다.
//
// 모든 함수는 상태가 없으므로 여러 고루틴에서 동시에 호출해도 안전합니다.
package validation
