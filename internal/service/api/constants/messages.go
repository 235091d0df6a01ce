package constants

// 로그 메시지
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "API 서비스가 예기치 않게 종료되었습니다"

	LogMsgHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다."

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
)

// 응답 에러 메시지
const (
	ErrMsgBadRequest         = "잘못된 요청입니다"
	ErrMsgInvalidBody        = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"
	ErrMsgMessageRequired    = "message는 필수입니다"
	ErrMsgInvalidDryRun      = "dry_run 값이 올바르지 않습니다 (true 또는 false)"
	ErrMsgAppKeyRequired     = "X-App-Key 헤더는 필수입니다"
	ErrMsgAppKeyInvalid      = "X-App-Key가 유효하지 않습니다"
	ErrMsgNotFound           = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgUnsupportedMedia   = "지원하지 않는 미디어 타입입니다"
	ErrMsgTooManyRequests    = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgInternalServer     = "내부 서버 오류가 발생했습니다"
	ErrMsgCampaignAPIOff     = "캠페인 실행 API가 비활성화되어 있습니다 (api.app_key 미설정)"
	ErrMsgServiceUnavailable = "원격 서비스를 일시적으로 사용할 수 없습니다. 잠시 후 다시 시도해주세요"
)

// panic 메시지
const (
	PanicMsgAppConfigRequired          = "AppConfig는 필수입니다"
	PanicMsgCampaignServiceRequired    = "CampaignService는 필수입니다"
	PanicMsgNotificationSenderRequired = "NotificationSender는 필수입니다"
)
