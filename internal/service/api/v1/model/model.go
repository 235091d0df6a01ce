package model

import (
	"github.com/darkkaiser/store-promoter/internal/catalog"
	"github.com/darkkaiser/store-promoter/internal/responder"
)

// ChatRequest 챗봇 질문 요청입니다.
type ChatRequest struct {
	// 고객이 입력한 문장
	Message string `json:"message" validate:"required,max=500" korean:"message" example:"ساعة"`
}

// ChatResponse 챗봇 응답입니다. WebSocket 프레임에도 같은 형식을 사용합니다.
type ChatResponse struct {
	// HTML 조각 (<br>, <a> 포함 가능)
	Reply string `json:"reply" example:"مرحبا! كيف يمكنني مساعدتك؟"`

	// 응답 종류 (product, keyword, default)
	Kind responder.Kind `json:"kind" example:"keyword"`

	// 상품 검색 결과 (Kind가 product일 때만)
	Products []catalog.Product `json:"products,omitempty"`
}

// NewChatResponse responder.Answer를 응답 형식으로 변환합니다.
func NewChatResponse(a responder.Answer) ChatResponse {
	return ChatResponse{
		Reply:    a.Reply,
		Kind:     a.Kind,
		Products: a.Products,
	}
}
