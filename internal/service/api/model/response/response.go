package response

// ErrorResponse 모든 에러 응답의 공통 형식입니다.
type ErrorResponse struct {
	// 결과 코드 (HTTP 상태 코드와 같음)
	ResultCode int `json:"result_code" example:"400"`

	// 에러 메시지
	Message string `json:"message" example:"message는 필수입니다"`
}

// SuccessResponse 본문 없이 성공만 알리는 응답입니다.
type SuccessResponse struct {
	// 결과 코드 (0: 성공)
	ResultCode int `json:"result_code" example:"0"`

	Message string `json:"message,omitempty" example:"성공"`
}
