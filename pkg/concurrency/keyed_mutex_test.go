package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_TryLock(t *testing.T) {
	km := NewKeyedMutex[string]()

	require.True(t, km.TryLock("iraq"))
	assert.False(t, km.TryLock("iraq"), "이미 잠긴 키는 실패해야 합니다")
	assert.True(t, km.TryLock("egypt"), "다른 키는 영향을 받지 않아야 합니다")
	assert.Equal(t, 2, km.Len())

	km.Unlock("iraq")
	km.Unlock("egypt")
	assert.Equal(t, 0, km.Len(), "해제된 키는 정리되어야 합니다")

	assert.True(t, km.TryLock("iraq"))
	km.Unlock("iraq")
}

func TestKeyedMutex_FailedTryLockLeavesNoEntry(t *testing.T) {
	km := NewKeyedMutex[string]()

	// 실패한 TryLock이 holders를 증가시키지 않아야 Unlock 한 번으로 정리됩니다.
	km.Lock("a")
	assert.False(t, km.TryLock("a"))
	km.Unlock("a")

	assert.Equal(t, 0, km.Len())
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex[int]()

	var (
		wg      sync.WaitGroup
		active  atomic.Int32
		maxSeen atomic.Int32
		counter int
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			km.Lock(1)
			defer km.Unlock(1)

			n := active.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			counter++
			active.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, int32(1), maxSeen.Load())
	assert.Equal(t, 0, km.Len())
}

func TestKeyedMutex_UnlockWithoutLockPanics(t *testing.T) {
	km := NewKeyedMutex[string]()

	assert.Panics(t, func() { km.Unlock("missing") })
}

func TestKeyedMutex_WithLock(t *testing.T) {
	km := NewKeyedMutex[string]()

	err := km.WithLock("k", func() error {
		assert.False(t, km.TryLock("k"), "fn 실행 중에는 잠겨 있어야 합니다")
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, km.Len())
}
