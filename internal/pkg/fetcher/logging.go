package fetcher

import (
	"net/http"
	"time"

	applog "github.com/darkkaiser/store-promoter/pkg/log"
)

// LoggingFetcher 요청 메서드, 가려진 URL, 상태 코드, 소요 시간을 기록하는 데코레이터입니다.
type LoggingFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*LoggingFetcher)(nil)

func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate}
}

func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"method":   req.Method,
		"url":      redactURL(req.URL),
		"duration": time.Since(start).String(),
	}
	if resp != nil {
		fields["status_code"] = resp.StatusCode
	}

	entry := applog.WithComponentAndFields(component, fields).WithContext(req.Context())
	if err != nil {
		entry.WithError(err).Error("HTTP 요청 실패")
		return resp, err
	}

	entry.Debug("HTTP 요청 완료")

	return resp, nil
}

func (f *LoggingFetcher) Close() error {
	return f.delegate.Close()
}
