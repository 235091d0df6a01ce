// Package rotation 캠페인 상품 목록에서 다음 게시 대상을 고르고, 마지막 선택 위치를 저장합니다.
//
// 선택 함수(Advance, Pick, Select)는 상태를 인자로 받아 새 상태를 반환하는 순수 함수이며,
// 상태의 영속화는 Store 구현체(파일, Redis, 메모리)가 담당합니다.
package rotation

import (
	"encoding/json"
	"math/rand/v2"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
)

// 상품 선택 전략
const (
	StrategySequential = "sequential"
	StrategyRandom     = "random"
)

// ErrEmptyCatalog 선택할 상품이 하나도 없습니다.
var ErrEmptyCatalog = apperrors.New(apperrors.InvalidInput, "상품 목록이 비어 있어 게시할 상품을 선택할 수 없습니다")

// State 캠페인의 순환 위치입니다. 한 번도 게시하지 않았다면 LastIndex는 -1입니다.
type State struct {
	LastIndex int `json:"lastIndex"`
}

// Initial 첫 게시 전의 상태를 반환합니다.
func Initial() State {
	return State{LastIndex: -1}
}

// UnmarshalJSON 이전 형식의 "last_index" 키도 받아들입니다.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw struct {
		LastIndex *int `json:"lastIndex"`
		Legacy    *int `json:"last_index"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.LastIndex != nil:
		s.LastIndex = *raw.LastIndex
	case raw.Legacy != nil:
		s.LastIndex = *raw.Legacy
	default:
		return apperrors.New(apperrors.ParsingFailed, "순환 상태에 lastIndex 값이 없습니다")
	}

	return nil
}

// Advance 마지막 위치 다음 상품을 고릅니다. 마지막 상품 다음은 처음 상품입니다.
//
// 목록이 줄어들었거나 상태 파일을 손으로 고친 경우처럼 범위를 벗어난 위치도 같은 나머지 연산으로 범위 안에 접어 넣습니다.
func Advance[T any](items []T, s State) (T, State, error) {
	var zero T
	n := len(items)
	if n == 0 {
		return zero, s, ErrEmptyCatalog
	}

	next := fold(s.LastIndex+1, n)
	return items[next], State{LastIndex: next}, nil
}

// RandomSource Pick이 사용하는 난수원입니다. *rand.Rand(math/rand/v2)가 만족합니다.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Pick 균등 분포로 임의의 상품을 고르고, 고른 위치를 새 상태로 기록합니다.
// rnd가 nil이면 전역 난수원을 사용합니다.
func Pick[T any](items []T, s State, rnd RandomSource) (T, State, error) {
	var zero T
	n := len(items)
	if n == 0 {
		return zero, s, ErrEmptyCatalog
	}
	if rnd == nil {
		rnd = globalSource{}
	}

	i := fold(rnd.IntN(n), n)
	return items[i], State{LastIndex: i}, nil
}

// Select strategy에 맞는 선택 함수를 호출합니다. 빈 strategy는 sequential입니다.
func Select[T any](strategy string, items []T, s State, rnd RandomSource) (T, State, error) {
	switch strategy {
	case "", StrategySequential:
		return Advance(items, s)
	case StrategyRandom:
		return Pick(items, s, rnd)
	default:
		var zero T
		return zero, s, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 선택 전략입니다: '%s'", strategy)
	}
}

func fold(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
