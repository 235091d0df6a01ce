// Package oauth1 OAuth 1.0a HMAC-SHA1 요청 서명과 Authorization 헤더 생성을 제공합니다.
//
// Sign은 순수 함수이므로 같은 입력에 대해 항상 같은 서명을 반환합니다.
// nonce와 타임스탬프를 채워 헤더까지 만드는 작업은 Signer가 담당합니다.
package oauth1
