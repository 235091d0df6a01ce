package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		errType ErrorType
		message string
	}{
		{name: "MissingCredential", errType: MissingCredential, message: "TWITTER_API_KEY is not set"},
		{name: "RemoteRejection", errType: RemoteRejection, message: "status 403"},
		{name: "Empty Message", errType: LocalFault, message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.errType, tt.message)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), "["+tt.errType.String()+"]")
			assert.True(t, Is(err, tt.errType))
		})
	}
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(InvalidInput, "campaign '%s' is invalid", "iraq")

	assert.Equal(t, "[InvalidInput] campaign 'iraq' is invalid", err.Error())
}

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "LocalFault", LocalFault.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
	assert.Equal(t, "ErrorType(-1)", ErrorType(-1).String())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("외부 에러 래핑", func(t *testing.T) {
		err := Wrap(errStd, LocalFault, "상품 목록 해석 실패")

		assert.Equal(t, "[LocalFault] 상품 목록 해석 실패: standard error", err.Error())
		assert.True(t, errors.Is(err, errStd))
		assert.Equal(t, errStd, RootCause(err))
	})

	t.Run("nil 래핑", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, Internal, "무시"))
		assert.Nil(t, Wrapf(nil, Internal, "무시 %d", 1))
	})

	t.Run("Wrapf", func(t *testing.T) {
		err := Wrapf(errStd, System, "파일(%s) 쓰기 실패", "state.json")
		assert.Contains(t, err.Error(), "파일(state.json) 쓰기 실패")
	})
}

func TestIs_ChainTraversal(t *testing.T) {
	t.Parallel()

	err := New(RemoteRejection, "status 401")
	err = Wrap(err, Internal, "게시 실패")
	err = fmt.Errorf("campaign run: %w", err)

	assert.True(t, Is(err, RemoteRejection))
	assert.True(t, Is(err, Internal))
	assert.False(t, Is(err, MissingCredential))
	assert.False(t, Is(nil, Internal))
}

func TestAs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", New(NotFound, "campaign"))

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, NotFound, appErr.Type())
	assert.Equal(t, "campaign", appErr.Message())
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "nil", err: nil, want: Unknown},
		{name: "표준 에러", err: errStd, want: Unknown},
		{name: "단일 AppError", err: New(Timeout, "t"), want: Timeout},
		{name: "중첩 AppError", err: Wrap(New(RemoteRejection, "r"), Internal, "i"), want: RemoteRejection},
		{name: "외부 에러를 감싼 AppError", err: Wrap(errStd, LocalFault, "l"), want: LocalFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnderlyingType(tt.err))
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	err := Wrap(Wrap(errStd, LocalFault, "inner"), Internal, "outer")

	t.Run("%v", func(t *testing.T) {
		assert.Equal(t, err.Error(), fmt.Sprintf("%v", err))
	})

	t.Run("%s", func(t *testing.T) {
		assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	})

	t.Run("%q", func(t *testing.T) {
		assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))
	})

	t.Run("%+v", func(t *testing.T) {
		out := fmt.Sprintf("%+v", err)

		assert.Contains(t, out, "[Internal] outer")
		assert.Contains(t, out, "Caused by:")
		assert.Contains(t, out, "[LocalFault] inner")
		assert.Contains(t, out, "standard error")
		assert.Contains(t, out, "Stack trace:")
		assert.Contains(t, out, "errors_test.go")
	})
}

func TestCaptureStack(t *testing.T) {
	t.Parallel()

	err := New(Internal, "stack")

	var appErr *AppError
	require.True(t, As(err, &appErr))
	require.NotEmpty(t, appErr.Stack())
	assert.LessOrEqual(t, len(appErr.Stack()), maxStackFrames)
	assert.Equal(t, "errors_test.go", appErr.Stack()[0].File)
	assert.Contains(t, appErr.Stack()[0].Function, "TestCaptureStack")
}
