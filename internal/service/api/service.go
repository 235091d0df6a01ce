package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	_ "github.com/darkkaiser/store-promoter/docs"
	"github.com/darkkaiser/store-promoter/internal/config"
	"github.com/darkkaiser/store-promoter/internal/pkg/version"
	"github.com/darkkaiser/store-promoter/internal/service/api/constants"
	"github.com/darkkaiser/store-promoter/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/store-promoter/internal/service/api/v1"
	v1handler "github.com/darkkaiser/store-promoter/internal/service/api/v1/handler"
	"github.com/darkkaiser/store-promoter/internal/service/contract"
	applog "github.com/darkkaiser/store-promoter/pkg/log"
	"github.com/labstack/echo/v4"
)

const notifyTimeout = 10 * time.Second

// Options Service 구성 값입니다.
type Options struct {
	// Chatbot nil이면 챗봇 엔드포인트를 등록하지 않습니다.
	Chatbot v1handler.Chatbot

	Campaigns v1handler.CampaignService

	// HealthCheckers /health 응답에 포함할 의존성입니다.
	HealthCheckers map[string]system.HealthChecker

	NotificationSender contract.NotificationSender

	BuildInfo version.Info
}

// Service 챗봇과 캠페인 관리 REST/WebSocket API 서버의 생명주기를 관리합니다.
type Service struct {
	appConfig *config.AppConfig
	opts      Options

	// listener 테스트에서 임의 포트로 미리 열어 둔 리스너입니다. nil이면 설정의 포트로 엽니다.
	listener net.Listener

	running   bool
	runningMu sync.Mutex
}

// NewService 필수 의존성이 없으면 panic이 발생합니다.
func NewService(appConfig *config.AppConfig, opts Options) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if opts.Campaigns == nil {
		panic(constants.PanicMsgCampaignServiceRequired)
	}
	if opts.NotificationSender == nil {
		panic(constants.PanicMsgNotificationSenderRequired)
	}

	return &Service{
		appConfig: appConfig,
		opts:      opts,
	}
}

// Start API 서버를 백그라운드에서 시작합니다.
// serviceStopCtx가 취소되면 진행 중인 요청을 ShutdownTimeout까지 기다린 뒤 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

func (s *Service) setupServer() *echo.Echo {
	apiConfig := s.appConfig.API

	e := NewHTTPServer(HTTPServerConfig{
		Debug:              s.appConfig.Debug,
		EnableHSTS:         apiConfig.TLSServer,
		AllowOrigins:       apiConfig.CORS.AllowOrigins,
		RequestTimeout:     apiConfig.RequestTimeout,
		BodyLimit:          apiConfig.BodyLimit,
		RateLimitPerSecond: apiConfig.RateLimit.RequestsPerSecond,
		RateLimitBurst:     apiConfig.RateLimit.Burst,
	})

	RegisterRoutes(e, system.NewHandler(s.opts.HealthCheckers, s.opts.BuildInfo))

	v1.RegisterRoutes(e, v1handler.NewHandler(s.opts.Chatbot, s.opts.Campaigns, v1handler.Options{
		TypingDelay:  s.appConfig.Chatbot.TypingDelay,
		AllowOrigins: apiConfig.CORS.AllowOrigins,
	}), apiConfig.AppKey)

	if apiConfig.SiteDir != "" {
		RegisterSite(e, apiConfig.SiteDir)
	}

	return e
}

func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	apiConfig := s.appConfig.API
	address := net.JoinHostPort("", strconv.Itoa(apiConfig.ListenPort))

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": apiConfig.ListenPort,
		"tls":  apiConfig.TLSServer,
	}).Info(constants.LogMsgHTTPServerStarting)

	if s.listener != nil {
		e.Listener = s.listener
	}

	var err error
	if apiConfig.TLSServer {
		err = e.StartTLS(address, apiConfig.TLSCertFile, apiConfig.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(err)
}

// handleServerError 정상 종료(http.ErrServerClosed)가 아니면 기록하고 관리자에게 알립니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(constants.LogMsgHTTPServerFatalError)

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if notifyErr := s.opts.NotificationSender.Notify(ctx, contract.Notification{
		Title:         "API 서버",
		Message:       fmt.Sprintf("%s\n\n%s", constants.LogMsgHTTPServerFatalError, err),
		ErrorOccurred: true,
	}); notifyErr != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": notifyErr,
		}).Warn("API 서버 오류 알림 전송 실패")
	}
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
