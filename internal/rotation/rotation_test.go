package rotation

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	apperrors "github.com/darkkaiser/store-promoter/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_VisitsEveryItemInOrder(t *testing.T) {
	items := []string{"a", "b", "c"}
	state := Initial()

	var got []int
	for i := 0; i < 6; i++ {
		item, next, err := Advance(items, state)
		require.NoError(t, err)
		assert.Equal(t, items[next.LastIndex], item)

		got = append(got, next.LastIndex)
		state = next
	}

	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, got)
}

func TestAdvance_NPlusOneWraps(t *testing.T) {
	for n := 1; n <= 7; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		state := Initial()
		for i := 0; i < n; i++ {
			item, next, err := Advance(items, state)
			require.NoError(t, err)
			require.Equal(t, i, item)
			state = next
		}

		item, next, err := Advance(items, state)
		require.NoError(t, err)
		assert.Equal(t, 0, item, "n=%d", n)
		assert.Equal(t, 0, next.LastIndex)
	}
}

func TestAdvance_FoldsOutOfRangeIndex(t *testing.T) {
	items := []string{"a", "b", "c"}

	tests := []struct {
		last int
		want int
	}{
		{last: 2, want: 0},
		{last: 3, want: 1},
		{last: 7, want: 2},
		{last: -5, want: 2},
	}

	for _, tt := range tests {
		_, next, err := Advance(items, State{LastIndex: tt.last})
		require.NoError(t, err)
		assert.Equal(t, tt.want, next.LastIndex, "last=%d", tt.last)
		assert.GreaterOrEqual(t, next.LastIndex, 0)
		assert.Less(t, next.LastIndex, len(items))
	}
}

func TestAdvance_EmptyCatalog(t *testing.T) {
	state := State{LastIndex: 4}

	_, next, err := Advance([]string{}, state)

	assert.ErrorIs(t, err, ErrEmptyCatalog)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	assert.Equal(t, state, next, "실패 시 상태는 바뀌지 않아야 합니다")
}

type fixedSource int

func (f fixedSource) IntN(int) int { return int(f) }

func TestPick(t *testing.T) {
	items := []string{"a", "b", "c"}

	item, next, err := Pick(items, Initial(), fixedSource(1))
	require.NoError(t, err)
	assert.Equal(t, "b", item)
	assert.Equal(t, 1, next.LastIndex)

	rnd := rand.New(rand.NewPCG(1, 2))
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		_, next, err := Pick(items, Initial(), rnd)
		require.NoError(t, err)
		seen[next.LastIndex] = true
	}
	assert.Len(t, seen, 3)

	_, _, err = Pick(items, Initial(), nil)
	assert.NoError(t, err)

	_, _, err = Pick([]string(nil), Initial(), rnd)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestSelect(t *testing.T) {
	items := []string{"a", "b"}

	item, _, err := Select("", items, Initial(), nil)
	require.NoError(t, err)
	assert.Equal(t, "a", item)

	item, _, err = Select(StrategySequential, items, State{LastIndex: 0}, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", item)

	item, _, err = Select(StrategyRandom, items, Initial(), fixedSource(1))
	require.NoError(t, err)
	assert.Equal(t, "b", item)

	_, _, err = Select("round-robin", items, Initial(), nil)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestState_JSON(t *testing.T) {
	data, err := json.Marshal(State{LastIndex: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lastIndex": 3}`, string(data))

	var s State
	require.NoError(t, json.Unmarshal([]byte(`{"last_index": 5}`), &s))
	assert.Equal(t, 5, s.LastIndex)

	require.NoError(t, json.Unmarshal([]byte(`{"lastIndex": 1, "last_index": 9}`), &s))
	assert.Equal(t, 1, s.LastIndex, "현재 형식이 우선합니다")

	assert.Error(t, json.Unmarshal([]byte(`{}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"lastIndex": "x"}`), &s))
}
