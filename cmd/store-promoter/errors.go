package main

import (
	"strings"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
)

var errNoCampaigns = apperrors.New(apperrors.InvalidInput, "설정된 캠페인이 없습니다")

func newErrCampaignRequired(ids []string) error {
	return apperrors.Newf(apperrors.InvalidInput, "캠페인이 여러 개입니다. 실행할 캠페인 ID를 지정하세요: %s", strings.Join(ids, ", "))
}
