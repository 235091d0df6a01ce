// Package contract 서비스 패키지(promoter, scheduler, api, notification) 사이에서 공유하는 타입과 인터페이스를 정의합니다.
//
// 서비스끼리 서로를 직접 import하면 순환 참조가 생기므로, 공통으로 참조하는 최소한의 계약만 이곳에 둡니다.
package contract
