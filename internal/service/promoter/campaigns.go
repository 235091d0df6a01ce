package promoter

import (
	"context"

	"github.com/darkkaiser/store-promoter/internal/catalog"
)

// CampaignStatus 캠페인 설정과 현재 순환 위치입니다.
type CampaignStatus struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Strategy  string `json:"strategy"`
	Scheduled bool   `json:"scheduled"`
	TimeSpec  string `json:"time_spec,omitempty"`

	// Products 상품 수입니다. 목록을 읽지 못하면 -1이고 Error에 사유가 담깁니다.
	Products  int    `json:"products"`
	LastIndex int    `json:"last_index"`
	Error     string `json:"error,omitempty"`
}

// Campaigns 설정된 캠페인을 설정 순서대로 나열합니다.
// 개별 캠페인의 상품 목록이나 상태를 읽지 못해도 전체 목록은 반환합니다.
func (s *Service) Campaigns(ctx context.Context) []CampaignStatus {
	statuses := make([]CampaignStatus, 0, len(s.campaigns))

	for _, c := range s.campaigns {
		st := CampaignStatus{
			ID:        c.ID,
			Title:     c.Title,
			Strategy:  c.EffectiveStrategy(),
			Scheduled: c.Scheduler.Runnable,
			TimeSpec:  c.Scheduler.TimeSpec,
			Products:  -1,
			LastIndex: -1,
		}

		if products, err := catalog.LoadProducts(c.ProductsFile); err != nil {
			st.Error = err.Error()
		} else {
			st.Products = len(products)
		}

		if state, err := s.store.Load(ctx, c.ID); err != nil {
			if st.Error == "" {
				st.Error = err.Error()
			}
		} else {
			st.LastIndex = state.LastIndex
		}

		statuses = append(statuses, st)
	}

	return statuses
}

// HasCampaign id가 설정된 캠페인인지 확인합니다.
func (s *Service) HasCampaign(id string) bool {
	_, ok := s.campaign(id)
	return ok
}
