package main

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/darkkaiser/store-promoter/internal/catalog"
	"github.com/darkkaiser/store-promoter/internal/config"
	"github.com/darkkaiser/store-promoter/internal/pkg/fetcher"
	"github.com/darkkaiser/store-promoter/internal/responder"
	"github.com/darkkaiser/store-promoter/internal/rotation"
	"github.com/darkkaiser/store-promoter/internal/service/contract"
	"github.com/darkkaiser/store-promoter/internal/service/notification/telegram"
	"github.com/darkkaiser/store-promoter/internal/service/promoter"
	"github.com/darkkaiser/store-promoter/internal/service/publisher"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/spf13/cobra"
)

const component = "main"

// annotationSkipConfig 설정 파일 없이 실행할 수 있는 명령에 붙입니다.
const annotationSkipConfig = "skip-config"

// defaultEnvFile 게시 API 자격 증명을 읽어 들일 기본 .env 파일입니다.
const defaultEnvFile = ".env"

// app 명령 사이에 공유되는 실행 상태입니다.
type app struct {
	configFile string
	envFiles   []string

	appConfig *config.AppConfig

	// setupLog 테스트에서 전역 로그 설정을 건너뛸 수 있도록 교체합니다.
	setupLog  func(opts applog.Options) (io.Closer, error)
	logCloser io.Closer

	// newNotifier 텔레그램 봇 API 클라이언트 생성을 교체합니다.
	newNotifier func(cfg config.TelegramConfig, debug bool, opts ...telegram.Option) (*telegram.Notifier, error)
}

func newApp() *app {
	return &app{
		setupLog:    applog.Setup,
		newNotifier: telegram.New,
	}
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "스토어프론트 상품 홍보 게시와 고객 문의 챗봇",
		Long: `store-promoter는 상품 카탈로그를 순서대로(또는 무작위로) 돌며 홍보 메시지를 게시하고,
스토어프론트와 텔레그램으로 들어오는 고객 문의에 키워드 기반으로 응답합니다.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationSkipConfig] == "true" {
				return nil
			}
			return a.prepare(cmd.Name() == "serve")
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", config.DefaultFilename, "설정 파일 경로")
	rootCmd.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{defaultEnvFile}, "게시 API 자격 증명을 읽을 .env 파일")

	rootCmd.AddCommand(
		newServeCommand(a),
		newPostCommand(a),
		newAskCommand(a),
		newCatalogCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

// prepare 설정을 읽고 로그 시스템을 초기화합니다. server가 true이면 Debug 여부에 따라 서버용 프로파일을 사용합니다.
func (a *app) prepare(server bool) error {
	appConfig, err := config.LoadWithFile(a.configFile)
	if err != nil {
		return err
	}
	a.appConfig = appConfig

	closer, err := a.setupLog(logOptions(appConfig, server))
	if err != nil {
		return err
	}
	a.logCloser = closer

	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

// logOptions 실행 형태에 맞는 프로파일에 설정 파일의 로그 항목을 덮어씁니다.
// 디버그 모드에서는 설정의 레벨과 관계없이 TRACE까지 기록합니다.
func logOptions(appConfig *config.AppConfig, server bool) applog.Options {
	var opts applog.Options
	switch {
	case server && appConfig.Debug:
		opts = applog.NewDevelopmentOptions(config.AppName)
	case server:
		opts = applog.NewProductionOptions(config.AppName)
	default:
		opts = applog.NewCommandOptions(config.AppName)
	}

	opts.Dir = appConfig.Log.Dir
	opts.Format = appConfig.Log.Format
	if !appConfig.Debug {
		if level, err := applog.ParseLevel(appConfig.Log.Level); err == nil {
			opts.Level = level
		}
	}

	return opts
}

func storeOptions(cfg config.StateConfig) rotation.StoreOptions {
	return rotation.StoreOptions{
		Backend:     cfg.Backend,
		Dir:         cfg.Dir,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
	}
}

// newFetcher 스토어프론트 수집용 Fetcher 체인을 만듭니다. 멱등 GET만 재시도합니다.
func newFetcher(appConfig *config.AppConfig) fetcher.Fetcher {
	return fetcher.New(fetcher.Config{
		Timeout:       appConfig.Publisher.Timeout,
		UserAgent:     config.AppName,
		MaxRetries:    appConfig.HTTPRetry.MaxRetries,
		MinRetryDelay: appConfig.HTTPRetry.RetryDelay,
		MaxRetryDelay: appConfig.HTTPRetry.MaxRetryDelay,
	})
}

// newPublisher 자격 증명을 읽어 게시 클라이언트를 만듭니다.
// 실패해도 에러만 반환하며, 호출자는 이를 promoter.WithPublisher에 그대로 넘겨 실제 게시 시점에 보고합니다.
func (a *app) newPublisher() (*publisher.Client, error) {
	creds, err := config.LoadCredentials(a.envFiles...)
	if err != nil {
		return nil, err
	}

	// 게시 요청은 재시도하지 않습니다.
	return publisher.New(a.appConfig.Publisher, creds, fetcher.New(fetcher.Config{
		Timeout:            a.appConfig.Publisher.Timeout,
		UserAgent:          config.AppName,
		AllowedStatusCodes: []int{http.StatusOK, http.StatusCreated},
	}))
}

// newResponder 챗봇 상품 목록과 키워드 표로 Responder를 만듭니다.
func (a *app) newResponder() (*responder.Responder, error) {
	products, err := catalog.LoadProducts(a.appConfig.Chatbot.ProductsFile)
	if err != nil {
		return nil, err
	}

	keywords := make([]responder.Keyword, 0, len(a.appConfig.Chatbot.Keywords))
	for _, k := range a.appConfig.Chatbot.Keywords {
		keywords = append(keywords, responder.Keyword{Keyword: k.Keyword, Reply: k.Reply})
	}

	return responder.New(responder.Options{
		Products:     products,
		Keywords:     keywords,
		DefaultReply: a.appConfig.Chatbot.DefaultReply,
		SKUPrefixes:  a.appConfig.Message.SKUPrefixes,
	}), nil
}

// newNotificationSender 텔레그램이 켜져 있으면 Notifier를, 아니면 아무것도 보내지 않는 구현을 반환합니다.
// 봇 초기화에 실패하면 경고만 남기고 알림 없이 계속합니다.
func (a *app) newNotificationSender(opts ...telegram.Option) (contract.NotificationSender, *telegram.Notifier) {
	tgConfig := a.appConfig.Notifiers.Telegram
	if !tgConfig.Enabled {
		return contract.NopNotificationSender{}, nil
	}

	notifier, err := a.newNotifier(tgConfig, a.appConfig.Debug, opts...)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Warn("텔레그램 알림을 사용할 수 없어 관리자 알림 없이 계속합니다")
		return contract.NopNotificationSender{}, nil
	}

	return notifier, notifier
}

// resolveCampaignID id가 비어 있으면 캠페인이 하나뿐일 때 그 캠페인을 사용합니다.
func resolveCampaignID(appConfig *config.AppConfig, args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}

	switch len(appConfig.Campaigns) {
	case 0:
		return "", errNoCampaigns
	case 1:
		return appConfig.Campaigns[0].ID, nil
	default:
		ids := make([]string, 0, len(appConfig.Campaigns))
		for _, c := range appConfig.Campaigns {
			ids = append(ids, c.ID)
		}
		return "", newErrCampaignRequired(ids)
	}
}

// newPromoter 게시 흐름에 필요한 의존성을 묶어 promoter.Service를 만듭니다. 반환된 함수로 자원을 정리합니다.
func (a *app) newPromoter(ctx context.Context, sender contract.NotificationSender) (*promoter.Service, rotation.Store, func(), error) {
	store, err := rotation.Open(ctx, storeOptions(a.appConfig.State))
	if err != nil {
		return nil, nil, nil, err
	}

	pub, pubErr := a.newPublisher()
	if pubErr != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": pubErr,
		}).Warn("게시 클라이언트를 만들 수 없습니다. 실제 게시 요청은 실패합니다")
	}

	svc := promoter.NewService(a.appConfig, store,
		promoter.WithPublisher(pub, pubErr),
		promoter.WithNotificationSender(sender),
	)

	cleanup := func() {
		if pub != nil {
			_ = pub.Close()
		}
		if err := store.Close(); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Warn("순환 상태 저장소 종료 중 오류가 발생했습니다")
		}
	}

	return svc, store, cleanup, nil
}
