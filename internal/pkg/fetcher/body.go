package fetcher

import (
	"io"
)

// maxDrainBytes 커넥션 재사용을 위해 버릴 응답 본문의 최대 크기입니다.
// 이보다 큰 본문이 남은 커넥션은 재사용되지 않습니다.
const maxDrainBytes = 64 * 1024

// drainAndCloseBody 남은 본문을 일정량 읽어 버린 뒤 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))
}
