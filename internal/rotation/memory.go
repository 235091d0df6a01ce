package rotation

import (
	"context"
	"sync"
)

// MemoryStore 프로세스 메모리에만 상태를 두는 저장소입니다. 테스트와 시험 실행에 사용합니다.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore 새로운 MemoryStore를 생성합니다.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (State, error) {
	if err := checkKey(key); err != nil {
		return State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.states[key]; ok {
		return st, nil
	}
	return Initial(), nil
}

func (s *MemoryStore) Save(_ context.Context, key string, st State) error {
	if err := checkKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[key] = st
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
