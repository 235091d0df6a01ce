package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer Setup에서 생성한 로그 파일들을 한 번에 해제합니다.
//
// hook을 먼저 닫아 닫힌 파일에 쓰기가 시도되지 않게 한 뒤, 모든 파일을 Sync/Close 합니다.
// 일부 파일 닫기에 실패해도 나머지는 계속 닫으며, 여러 번 호출해도 안전합니다.
type closer struct {
	closers []io.Closer
	hook    *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}
		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
