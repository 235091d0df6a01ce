// Package promoter 캠페인 한 회차(상품 선택, 상태 저장, 메시지 생성, 게시, 알림)를 실행합니다.
package promoter

import (
	"context"
	"fmt"
	"time"

	"github.com/darkkaiser/store-promoter/internal/catalog"
	"github.com/darkkaiser/store-promoter/internal/composer"
	"github.com/darkkaiser/store-promoter/internal/config"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/internal/rotation"
	"github.com/darkkaiser/store-promoter/internal/service/contract"
	"github.com/darkkaiser/store-promoter/internal/service/publisher"
	"github.com/darkkaiser/store-promoter/pkg/concurrency"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/google/uuid"
)

const component = "promoter.service"

// notifyTimeout 관리자 알림 전송에 허용하는 최대 시간입니다. 게시 결과와 무관하게 적용됩니다.
const notifyTimeout = 10 * time.Second

// Publisher 메시지를 게시합니다. *publisher.Client가 만족합니다.
type Publisher interface {
	Post(ctx context.Context, text string) (*publisher.Receipt, error)
}

// RunOptions 한 회차 실행 옵션입니다.
type RunOptions struct {
	// DryRun true이면 게시하지 않고 상태도 저장하지 않습니다. 다음 게시 대상 미리보기에 사용합니다.
	DryRun bool

	RunBy contract.RunBy
}

// Result 한 회차의 실행 결과입니다.
type Result struct {
	RunID      string             `json:"run_id"`
	CampaignID string             `json:"campaign_id"`
	RunBy      contract.RunBy     `json:"run_by"`
	Product    catalog.Product    `json:"product"`
	Index      int                `json:"index"` // 0부터 시작
	Total      int                `json:"total"`
	Message    string             `json:"message"`
	Length     int                `json:"length"` // 문자 수
	DryRun     bool               `json:"dry_run"`
	Receipt    *publisher.Receipt `json:"receipt,omitempty"`
}

// Option Service 설정 변경 함수입니다.
type Option func(*Service)

// WithPublisher 게시 클라이언트를 지정합니다. p가 nil이면 err가 실제 게시 요청의 실패 사유가 됩니다.
func WithPublisher(p Publisher, err error) Option {
	return func(s *Service) {
		if err != nil {
			p = nil
		}
		s.publisher = p
		s.publisherErr = err
	}
}

// WithNotificationSender 관리자 알림 채널을 지정합니다.
func WithNotificationSender(sender contract.NotificationSender) Option {
	return func(s *Service) {
		if sender != nil {
			s.notificationSender = sender
		}
	}
}

// WithRandomSource random 전략에서 사용할 난수원을 지정합니다.
func WithRandomSource(rnd rotation.RandomSource) Option {
	return func(s *Service) { s.rnd = rnd }
}

// WithRunIDGenerator 실행 ID 생성 함수를 교체합니다.
func WithRunIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newRunID = fn }
}

// Service 설정된 캠페인을 실행합니다. 여러 고루틴(Cron, API, CLI)에서 동시에 호출해도 안전합니다.
type Service struct {
	campaigns []config.CampaignConfig
	maxLength int

	composer *composer.Composer
	store    rotation.Store

	publisher    Publisher
	publisherErr error

	notificationSender contract.NotificationSender

	rnd      rotation.RandomSource
	newRunID func() string

	// running 같은 캠페인의 동시 실행을 막습니다. 다른 캠페인은 병렬로 실행됩니다.
	running *concurrency.KeyedMutex[string]
}

// NewService 새로운 Service를 생성합니다. store는 필수입니다.
func NewService(appConfig *config.AppConfig, store rotation.Store, opts ...Option) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}
	if store == nil {
		panic("rotation.Store는 필수입니다")
	}

	s := &Service{
		campaigns: append([]config.CampaignConfig(nil), appConfig.Campaigns...),
		maxLength: appConfig.Message.MaxLength,

		composer: composer.New(composer.Options{
			BaseURL:     appConfig.Message.BaseURL,
			RegionTag:   appConfig.Message.RegionTag,
			CityTags:    appConfig.Message.CityTags,
			SKUPrefixes: appConfig.Message.SKUPrefixes,
		}),
		store: store,

		publisherErr:       ErrPublisherNotConfigured,
		notificationSender: contract.NopNotificationSender{},

		newRunID: uuid.NewString,
		running:  concurrency.NewKeyedMutex[string](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.publisher == nil && s.publisherErr == nil {
		s.publisherErr = ErrPublisherNotConfigured
	}

	return s
}

func (s *Service) campaign(id string) (config.CampaignConfig, bool) {
	for _, c := range s.campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return config.CampaignConfig{}, false
}

// Run 캠페인의 다음 상품을 게시합니다.
//
//  1. 같은 캠페인이 실행 중이면 즉시 Conflict
//  2. 실제 게시라면 게시 클라이언트(자격 증명)부터 확인
//  3. 상품 목록과 순환 상태를 읽고 전략에 따라 상품 선택
//  4. persist_order가 before_send이면 게시 전에 상태 저장
//  5. 메시지를 만들고 최대 길이에 맞춰 자른 뒤 게시
//  6. after_send이면 게시 성공 후 상태 저장
//
// 실패하면 관리자에게 알리며, 설정에 따라 성공도 알립니다.
func (s *Service) Run(ctx context.Context, campaignID string, opts RunOptions) (*Result, error) {
	campaign, ok := s.campaign(campaignID)
	if !ok {
		return nil, newErrCampaignNotFound(campaignID)
	}

	if !s.running.TryLock(campaign.ID) {
		return nil, newErrCampaignRunning(campaign.ID)
	}
	defer s.running.Unlock(campaign.ID)

	result := &Result{
		RunID:      s.newRunID(),
		CampaignID: campaign.ID,
		RunBy:      opts.RunBy,
		DryRun:     opts.DryRun,
	}
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"run_id":      result.RunID,
		"campaign_id": campaign.ID,
		"run_by":      opts.RunBy.String(),
		"dry_run":     opts.DryRun,
	})

	if err := s.run(ctx, campaign, result, logger); err != nil {
		logger.WithError(err).Error("캠페인 실행 실패")
		if !opts.DryRun {
			s.notify(ctx, campaign, opts.RunBy, "게시 실패", fmt.Sprintf("%s\n\n%v", campaignTitle(campaign), err), true)
		}
		return result, err
	}

	if !opts.DryRun && campaign.NotifyOnSuccess {
		s.notify(ctx, campaign, opts.RunBy, "게시 완료", successMessage(campaign, result), false)
	}

	return result, nil
}

func (s *Service) run(ctx context.Context, campaign config.CampaignConfig, result *Result, logger *applog.Entry) error {
	if !result.DryRun && s.publisher == nil {
		return s.publisherErr
	}

	products, err := catalog.LoadProducts(campaign.ProductsFile)
	if err != nil {
		return err
	}

	state, err := s.store.Load(ctx, campaign.ID)
	if err != nil {
		return err
	}

	product, next, err := rotation.Select(campaign.EffectiveStrategy(), products, state, s.rnd)
	if err != nil {
		return err
	}

	persistBefore := campaign.EffectivePersistOrder() == config.PersistBeforeSend
	if !result.DryRun && persistBefore {
		if err := s.store.Save(ctx, campaign.ID, next); err != nil {
			return err
		}
	}

	maxLength := campaign.MaxLength
	if maxLength == 0 {
		maxLength = s.maxLength
	}
	message := composer.Fit(s.composer.Compose(product), maxLength)

	result.Product = product
	result.Index = next.LastIndex
	result.Total = len(products)
	result.Message = message
	result.Length = len([]rune(message))

	logger.WithFields(applog.Fields{
		"position": fmt.Sprintf("%d/%d", next.LastIndex+1, len(products)),
		"sku":      product.SKU,
		"length":   result.Length,
		"strategy": campaign.EffectiveStrategy(),
	}).Info("게시 대상 상품을 선택했습니다")

	if result.DryRun {
		return nil
	}

	receipt, err := s.publisher.Post(ctx, message)
	if err != nil {
		return err
	}
	result.Receipt = receipt

	if !persistBefore {
		if err := s.store.Save(ctx, campaign.ID, next); err != nil {
			return apperrors.Wrap(err, apperrors.UnderlyingType(err), "게시는 완료되었지만 순환 상태를 저장하지 못했습니다")
		}
	}

	return nil
}

// notify 알림 전송 실패는 로그로만 남깁니다.
// 호출자의 컨텍스트가 이미 취소되었더라도 실패 알림은 보낼 수 있도록 새 컨텍스트를 사용합니다.
func (s *Service) notify(ctx context.Context, campaign config.CampaignConfig, runBy contract.RunBy, title, message string, errorOccurred bool) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	err := s.notificationSender.Notify(notifyCtx, contract.Notification{
		CampaignID:    campaign.ID,
		RunBy:         runBy,
		Title:         title,
		Message:       message,
		ErrorOccurred: errorOccurred,
	})
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"campaign_id": campaign.ID,
		}).WithError(err).Warn("관리자 알림 전송 실패")
	}
}

func campaignTitle(c config.CampaignConfig) string {
	if c.Title != "" {
		return fmt.Sprintf("%s (%s)", c.Title, c.ID)
	}
	return c.ID
}

func successMessage(c config.CampaignConfig, r *Result) string {
	msg := fmt.Sprintf("%s\n%d/%d %s (%s)", campaignTitle(c), r.Index+1, r.Total, r.Product.Title, r.Product.SKU)
	if r.Receipt != nil && r.Receipt.URL != "" {
		msg += "\n" + r.Receipt.URL
	}
	return msg
}
