package promoter

import (
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
)

// ErrPublisherNotConfigured 게시 클라이언트 없이 실제 게시를 요청했을 때 반환하는 에러입니다.
var ErrPublisherNotConfigured = apperrors.New(apperrors.MissingCredential, "게시 API 클라이언트가 설정되지 않았습니다")

func newErrCampaignNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "등록되지 않은 캠페인입니다 (campaign=%s)", id)
}

func newErrCampaignRunning(id string) error {
	return apperrors.Newf(apperrors.Conflict, "캠페인이 이미 실행 중입니다 (campaign=%s)", id)
}
