package handler

import (
	"net/http"
	"strings"

	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	apihandler "github.com/darkkaiser/store-promoter/internal/service/api/handler"
	"github.com/darkkaiser/store-promoter/internal/service/api/httputil"
	"github.com/darkkaiser/store-promoter/internal/service/api/v1/model"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
)

// ChatHandler godoc
// @Summary 챗봇 질문
// @Description 상품명/SKU 검색, 키워드 응답표, 기본 응답 순서로 답변을 찾습니다.
// @Description reply는 웹 위젯에 그대로 넣을 수 있는 HTML 조각입니다.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body model.ChatRequest true "질문"
// @Success 200 {object} model.ChatResponse
// @Failure 400 {object} response.ErrorResponse "message 누락 또는 JSON 형식 오류"
// @Failure 429 {object} response.ErrorResponse "요청 한도 초과"
// @Router /api/v1/chat [post]
func (h *Handler) ChatHandler(c echo.Context) error {
	req := new(model.ChatRequest)
	if err := c.Bind(req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgInvalidBody)
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return httputil.NewBadRequestError(constants.ErrMsgMessageRequired)
	}
	if err := apihandler.ValidateRequest(req); err != nil {
		return httputil.NewBadRequestError(apihandler.FormatValidationError(err))
	}

	answer := h.chatbot.Answer(req.Message)

	h.log(c).WithFields(applog.Fields{
		"kind":     answer.Kind,
		"products": len(answer.Products),
	}).Debug("챗봇 응답")

	return c.JSON(http.StatusOK, model.NewChatResponse(answer))
}
