package concurrency

import (
	"sync"
)

// KeyedMutex 키마다 독립적인 잠금을 제공합니다.
// 서로 다른 키는 병렬로 진행되고, 같은 키에 대한 작업만 직렬화됩니다.
// 대기자가 없는 키의 잠금은 해제 시점에 맵에서 제거됩니다.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*keyedLock
}

type keyedLock struct {
	mu      sync.Mutex
	holders int // 잠금을 보유했거나 대기 중인 고루틴 수
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex[K comparable]() *KeyedMutex[K] {
	return &KeyedMutex[K]{
		locks: make(map[K]*keyedLock),
	}
}

// Len 잠겨 있거나 대기자가 있는 키의 개수를 반환합니다.
func (km *KeyedMutex[K]) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}

// Lock key에 대한 잠금을 얻을 때까지 대기합니다.
func (km *KeyedMutex[K]) Lock(key K) {
	km.mu.Lock()
	l, ok := km.locks[key]
	if !ok {
		l = &keyedLock{}
		km.locks[key] = l
	}
	l.holders++
	km.mu.Unlock()

	l.mu.Lock()
}

// TryLock key가 사용 중이면 대기하지 않고 false를 반환합니다.
// true를 반환한 경우에만 Unlock을 호출해야 합니다.
func (km *KeyedMutex[K]) TryLock(key K) bool {
	km.mu.Lock()
	defer km.mu.Unlock()

	l, ok := km.locks[key]
	if !ok {
		l = &keyedLock{}
		km.locks[key] = l
	}

	if !l.mu.TryLock() {
		return false
	}
	l.holders++

	return true
}

// Unlock key의 잠금을 해제합니다.
// 잠기지 않은 key를 해제하면 panic이 발생합니다.
func (km *KeyedMutex[K]) Unlock(key K) {
	km.mu.Lock()
	defer km.mu.Unlock()

	l, ok := km.locks[key]
	if !ok || l.holders == 0 {
		panic("concurrency: 잠기지 않은 키의 잠금 해제 시도")
	}

	l.mu.Unlock()

	l.holders--
	if l.holders == 0 {
		delete(km.locks, key)
	}
}

// WithLock key의 잠금을 보유한 채로 fn을 실행하고 그 결과를 반환합니다.
func (km *KeyedMutex[K]) WithLock(key K, fn func() error) error {
	km.Lock(key)
	defer km.Unlock(key)

	return fn()
}
