// Package middleware API 서버의 Echo 미들웨어를 제공합니다.
//
// 권장 적용 순서는 api.NewHTTPServer를 참고하세요. PanicRecovery가 가장 바깥에,
// HTTPLogger가 RateLimiting보다 앞에 있어야 거부된 요청도 로그에 남습니다.
package middleware
