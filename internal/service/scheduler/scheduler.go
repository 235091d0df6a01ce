// Package scheduler 설정된 Cron 스케줄에 맞춰 캠페인을 자동으로 실행합니다.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/store-promoter/internal/config"
	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/darkkaiser/store-promoter/internal/service/contract"
	"github.com/darkkaiser/store-promoter/internal/service/promoter"
	"github.com/darkkaiser/store-promoter/pkg/cronx"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// campaignRunTimeout 한 회차 실행(상품 목록 읽기부터 게시까지)에 허용하는 최대 시간입니다.
const campaignRunTimeout = 5 * time.Minute

// notifyTimeout 스케줄러 자체 오류를 알릴 때의 최대 대기 시간입니다.
const notifyTimeout = 10 * time.Second

// CampaignRunner 캠페인 한 회차를 실행합니다. *promoter.Service가 만족합니다.
type CampaignRunner interface {
	Run(ctx context.Context, campaignID string, opts promoter.RunOptions) (*promoter.Result, error)
}

// Scheduler 캠페인 설정의 scheduler 항목을 Cron 엔진에 등록해 실행하는 서비스입니다.
type Scheduler struct {
	campaigns []config.CampaignConfig

	cron *cron.Cron

	runner CampaignRunner

	// notificationSender 스케줄 등록 실패 등 스케줄러 자체의 오류를 관리자에게 알립니다.
	// 캠페인 실행 실패는 promoter가 직접 알립니다.
	notificationSender contract.NotificationSender

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(campaigns []config.CampaignConfig, runner CampaignRunner, notificationSender contract.NotificationSender) *Scheduler {
	if runner == nil {
		panic("CampaignRunner는 필수입니다")
	}
	if notificationSender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Scheduler{
		campaigns: campaigns,

		runner: runner,

		notificationSender: notificationSender,
	}
}

// Start 스케줄러를 시작합니다. 종료는 serviceStopCtx 취소로 요청하며, 정리가 끝나면 serviceStopWG.Done()이 호출됩니다.
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.runner == nil {
		serviceStopWG.Done()
		return ErrCampaignRunnerNotInitialized
	}
	if s.notificationSender == nil {
		serviceStopWG.Done()
		return ErrNotificationSenderNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// 6필드(초 포함) 파서, Panic 복구, 이전 실행이 끝나지 않았으면 건너뛰기
	cronLogger := cron.VerbosePrintfLogger(applog.StandardLogger())
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cronLogger),
		cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		),
	)

	s.registerCampaigns(serviceStopCtx)

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"registered_schedules": len(s.cron.Entries()),
		"total_campaigns":      len(s.campaigns),
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 중지하고 진행 중인 실행이 끝날 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// registerCampaigns scheduler.runnable이 켜진 캠페인만 등록합니다.
// 표현식이 잘못된 캠페인은 건너뛰고 관리자에게 알립니다.
func (s *Scheduler) registerCampaigns(serviceStopCtx context.Context) {
	for _, c := range s.campaigns {
		if !c.Scheduler.Runnable {
			continue
		}

		campaignID := c.ID
		timeSpec := c.Scheduler.TimeSpec

		_, err := s.cron.AddFunc(timeSpec, func() {
			// 실행 중에 서비스가 종료되어도 게시가 중간에 끊기지 않도록 종료 컨텍스트와 분리합니다.
			// cron.Stop()이 진행 중인 실행의 완료를 기다립니다.
			ctx, cancel := context.WithTimeout(context.Background(), campaignRunTimeout)
			defer cancel()

			s.runCampaign(ctx, campaignID)
		})
		if err != nil {
			s.logAndNotifyError(serviceStopCtx, campaignID, newErrInvalidCronSpec(campaignID, timeSpec, err))
			continue
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"campaign_id": campaignID,
			"time_spec":   timeSpec,
		}).Debug("캠페인 스케줄을 등록했습니다")
	}
}

func (s *Scheduler) runCampaign(ctx context.Context, campaignID string) {
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"campaign_id": campaignID,
		"run_by":      contract.RunByScheduler.String(),
	})

	result, err := s.runner.Run(ctx, campaignID, promoter.RunOptions{RunBy: contract.RunByScheduler})
	if err != nil {
		if apperrors.Is(err, apperrors.Conflict) {
			logger.WithError(err).Warn("다른 경로로 실행 중인 캠페인이라 이번 회차를 건너뜁니다")
			return
		}
		logger.WithError(err).Error("예약된 캠페인 실행 실패")
		return
	}

	logger.WithFields(applog.Fields{
		"run_id": result.RunID,
		"sku":    result.Product.SKU,
	}).Info("예약된 캠페인 실행 완료")
}

// logAndNotifyError 스케줄러 자체의 오류를 로깅하고 관리자에게 알립니다.
func (s *Scheduler) logAndNotifyError(serviceStopCtx context.Context, campaignID string, err error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"campaign_id": campaignID,
		"run_by":      contract.RunByScheduler.String(),
	}).WithError(err).Error("스케줄러 오류")

	ctx, cancel := context.WithTimeout(context.WithoutCancel(serviceStopCtx), notifyTimeout)
	defer cancel()

	if notifyErr := s.notificationSender.Notify(ctx, contract.Notification{
		CampaignID:    campaignID,
		RunBy:         contract.RunByScheduler,
		Title:         "스케줄 등록 실패",
		Message:       err.Error(),
		ErrorOccurred: true,
	}); notifyErr != nil {
		applog.WithComponent(component).WithError(notifyErr).Warn("관리자 알림 전송 실패")
	}
}

// Entries 등록된 스케줄 수를 반환합니다. 실행 중이 아니면 0입니다.
func (s *Scheduler) Entries() int {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}
