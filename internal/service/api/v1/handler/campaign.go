package handler

import (
	"net/http"
	"strconv"

	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/api/httputil"
	"github.com/darkkaiser/store-promoter/internal/service/contract"
	"github.com/darkkaiser/store-promoter/internal/service/promoter"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
)

// ListCampaignsHandler godoc
// @Summary 캠페인 목록
// @Description 설정된 캠페인과 상품 수, 마지막 게시 위치를 반환합니다.
// @Tags Campaign
// @Produce json
// @Param X-App-Key header string true "App Key"
// @Success 200 {array} promoter.CampaignStatus
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 403 {object} response.ErrorResponse "api.app_key 미설정"
// @Security ApiKeyAuth
// @Router /api/v1/campaigns [get]
func (h *Handler) ListCampaignsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.campaigns.Campaigns(c.Request().Context()))
}

// RunCampaignHandler godoc
// @Summary 캠페인 즉시 실행
// @Description 순환 순서상 다음 상품을 게시합니다. dry_run=true이면 게시하지 않고 상태도 바꾸지 않은 채 메시지만 미리 봅니다.
// @Tags Campaign
// @Produce json
// @Param X-App-Key header string true "App Key"
// @Param id path string true "캠페인 ID"
// @Param dry_run query bool false "미리보기"
// @Success 200 {object} promoter.Result
// @Failure 400 {object} response.ErrorResponse "상품 목록이 비어 있음 등"
// @Failure 404 {object} response.ErrorResponse "등록되지 않은 캠페인"
// @Failure 409 {object} response.ErrorResponse "같은 캠페인이 이미 실행 중"
// @Failure 502 {object} response.ErrorResponse "게시 API 거부 또는 연결 실패"
// @Failure 503 {object} response.ErrorResponse "게시 자격 증명 미설정"
// @Failure 504 {object} response.ErrorResponse "게시 API 시간 초과"
// @Security ApiKeyAuth
// @Router /api/v1/campaigns/{id}/run [post]
func (h *Handler) RunCampaignHandler(c echo.Context) error {
	id := c.Param("id")

	dryRun := false
	if v := c.QueryParam(constants.QueryParamDryRun); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return httputil.NewBadRequestError(constants.ErrMsgInvalidDryRun)
		}
		dryRun = parsed
	}

	result, err := h.campaigns.Run(c.Request().Context(), id, promoter.RunOptions{
		DryRun: dryRun,
		RunBy:  contract.RunByAPI,
	})
	if err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"campaign_id": id,
		"run_id":      result.RunID,
		"dry_run":     dryRun,
	}).Info("API 요청으로 캠페인 실행 완료")

	return c.JSON(http.StatusOK, result)
}
