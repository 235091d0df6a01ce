package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/store-promoter/internal/pkg/version"
	"github.com/darkkaiser/store-promoter/internal/responder"
	"github.com/darkkaiser/store-promoter/internal/rotation"
	"github.com/darkkaiser/store-promoter/internal/service/api"
	"github.com/darkkaiser/store-promoter/internal/service/api/handler/system"
	"github.com/darkkaiser/store-promoter/internal/service/contract"
	"github.com/darkkaiser/store-promoter/internal/service/notification/telegram"
	"github.com/darkkaiser/store-promoter/internal/service/promoter"
	"github.com/darkkaiser/store-promoter/internal/service/scheduler"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/spf13/cobra"
)

// service serve 명령이 함께 구동하는 백그라운드 서비스입니다.
type service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "스케줄러, API 서버, 텔레그램 챗봇을 실행합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd)
		},
	}
}

func (a *app) serve(cmd *cobra.Command) error {
	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	buildInfo := version.Get()
	fmt.Fprintf(cmd.OutOrStdout(), banner, buildInfo.Version)

	applog.WithComponentAndFields(component, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[a.appConfig.Debug],
	}).Info("서버 초기화 시작")

	services, cleanup, err := a.buildServices(cmd.Context(), buildInfo)
	if err != nil {
		return err
	}
	defer cleanup()

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			return err
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(termC)

	applog.WithComponent(component).Info("서버 가동 완료")

	select {
	case sig := <-termC:
		applog.WithComponentAndFields(component, applog.Fields{
			"signal": sig.String(),
		}).Info("종료 신호를 받았습니다")
	case <-cmd.Context().Done():
		applog.WithComponent(component).Info("명령 컨텍스트가 종료되었습니다")
	}

	cancel()
	serviceStopWG.Wait()

	applog.WithComponent(component).Info("서버 종료 완료")

	return nil
}

// buildServices 설정에 따라 서비스를 생성합니다. 시작 순서는 알림 채널, 스케줄러, API 서버입니다.
func (a *app) buildServices(ctx context.Context, buildInfo version.Info) ([]service, func(), error) {
	var chatbot *responder.Responder
	if a.appConfig.Chatbot.Enabled {
		r, err := a.newResponder()
		if err != nil {
			return nil, nil, err
		}
		chatbot = r
	}

	var tgOpts []telegram.Option
	if chatbot != nil && a.appConfig.Notifiers.Telegram.Chatbot {
		tgOpts = append(tgOpts, telegram.WithChatbot(chatbot, a.appConfig.Chatbot.GreetingKeyword, a.appConfig.Message.BaseURL))
	}
	sender, notifier := a.newNotificationSender(tgOpts...)

	promoterService, store, cleanup, err := a.newPromoter(ctx, sender)
	if err != nil {
		return nil, nil, err
	}

	var services []service
	if notifier != nil {
		services = append(services, notifier)
	}
	services = append(services, scheduler.NewService(a.appConfig.Campaigns, promoterService, sender))

	if a.appConfig.API.Enabled {
		services = append(services, a.newAPIService(chatbot, promoterService, store, sender, buildInfo))
	}

	return services, cleanup, nil
}

func (a *app) newAPIService(chatbot *responder.Responder, campaigns *promoter.Service, store rotation.Store, sender contract.NotificationSender, buildInfo version.Info) *api.Service {
	checkers := make(map[string]system.HealthChecker)
	if hc, ok := store.(system.HealthChecker); ok {
		checkers["state_store"] = hc
	}

	opts := api.Options{
		Campaigns:          campaigns,
		HealthCheckers:     checkers,
		NotificationSender: sender,
		BuildInfo:          buildInfo,
	}
	// nil 포인터를 인터페이스에 담으면 nil로 비교되지 않습니다.
	if chatbot != nil {
		opts.Chatbot = chatbot
	}
	if a.appConfig.API.AppKey == "" {
		applog.WithComponent(component).Warn("api.app_key가 비어 있어 캠페인 API가 비활성화됩니다")
	}

	return api.NewService(a.appConfig, opts)
}
