package log

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type failWriter struct{ err error }

func (w *failWriter) Write([]byte) (int, error) { return 0, w.err }

type closeRecorder struct {
	closed int
	err    error
}

func (c *closeRecorder) Close() error {
	c.closed++
	return c.err
}

func newTestEntry(level Level, msg string) *Entry {
	e := logrus.NewEntry(logrus.New())
	e.Level = level
	e.Message = msg
	return e
}

func TestHook_Routing(t *testing.T) {
	main, critical, verbose, console := &safeBuffer{}, &safeBuffer{}, &safeBuffer{}, &safeBuffer{}
	h := &hook{
		mainWriter:     main,
		criticalWriter: critical,
		verboseWriter:  verbose,
		consoleWriter:  console,
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}

	tests := []struct {
		level        Level
		msg          string
		wantMain     bool
		wantCritical bool
		wantVerbose  bool
	}{
		{level: ErrorLevel, msg: "error-msg", wantMain: true, wantCritical: true},
		{level: WarnLevel, msg: "warn-msg", wantMain: true},
		{level: InfoLevel, msg: "info-msg", wantMain: true},
		{level: DebugLevel, msg: "debug-msg", wantVerbose: true},
		{level: TraceLevel, msg: "trace-msg", wantVerbose: true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			require.NoError(t, h.Fire(newTestEntry(tt.level, tt.msg)))

			assert.Equal(t, tt.wantMain, bytes.Contains([]byte(main.String()), []byte(tt.msg)))
			assert.Equal(t, tt.wantCritical, bytes.Contains([]byte(critical.String()), []byte(tt.msg)))
			assert.Equal(t, tt.wantVerbose, bytes.Contains([]byte(verbose.String()), []byte(tt.msg)))
			assert.Contains(t, console.String(), tt.msg, "콘솔에는 모든 레벨이 출력되어야 합니다")
		})
	}
}

func TestHook_WriteFailure(t *testing.T) {
	writeErr := errors.New("disk full")
	main := &safeBuffer{}
	h := &hook{
		mainWriter:     main,
		criticalWriter: &failWriter{err: writeErr},
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}

	err := h.Fire(newTestEntry(ErrorLevel, "boom"))

	assert.ErrorIs(t, err, writeErr)
	assert.Contains(t, main.String(), "boom", "Critical 쓰기가 실패해도 Main에는 기록되어야 합니다")
}

func TestHook_Closed(t *testing.T) {
	main := &safeBuffer{}
	h := &hook{mainWriter: main, formatter: &logrus.TextFormatter{}}

	require.NoError(t, h.Close())
	require.NoError(t, h.Fire(newTestEntry(InfoLevel, "after-close")))

	assert.Empty(t, main.String())
}

func TestCloser_Idempotent(t *testing.T) {
	closeErr := errors.New("close failed")
	first := &closeRecorder{err: closeErr}
	second := &closeRecorder{}
	h := &hook{}

	c := &closer{closers: []io.Closer{first, nil, second}, hook: h}

	err := c.Close()
	assert.ErrorIs(t, err, closeErr)
	assert.Equal(t, 1, second.closed, "앞선 Close 실패와 관계없이 나머지도 닫아야 합니다")
	assert.True(t, h.closed)

	assert.NoError(t, c.Close())
	assert.Equal(t, 1, first.closed)
}

func TestOptions_Validate(t *testing.T) {
	fileAsDir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(fileAsDir, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "정상", opts: NewProductionOptions("app")},
		{name: "이름 누락", opts: Options{}, wantErr: true},
		{name: "디렉토리 경로가 파일", opts: Options{Name: "app", Dir: fileAsDir}, wantErr: true},
		{name: "지원하지 않는 형식", opts: Options{Name: "app", Format: "xml"}, wantErr: true},
		{name: "음수 MaxAge", opts: Options{Name: "app", MaxAge: -1}, wantErr: true},
		{name: "음수 MaxSizeMB", opts: Options{Name: "app", MaxSizeMB: -1}, wantErr: true},
		{name: "음수 MaxBackups", opts: Options{Name: "app", MaxBackups: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewHook_Files(t *testing.T) {
	dir := t.TempDir()

	opts := NewProductionOptions("store-promoter")
	h, closers := newHook(opts, dir)

	require.Len(t, closers, 3)
	assert.NotNil(t, h.criticalWriter)
	assert.NotNil(t, h.verboseWriter)
	assert.Nil(t, h.consoleWriter)

	main := newRotatingFile(opts, dir, "")
	assert.Equal(t, filepath.Join(dir, "store-promoter.log"), main.Filename)
	critical := newRotatingFile(opts, dir, "critical")
	assert.Equal(t, filepath.Join(dir, "store-promoter.critical.log"), critical.Filename)

	dev, devClosers := newHook(NewDevelopmentOptions("store-promoter"), dir)
	assert.Len(t, devClosers, 1)
	assert.NotNil(t, dev.consoleWriter)
}

func TestNewFormatter_CallerPrefix(t *testing.T) {
	opts := Options{Name: "app", CallerPathPrefix: "github.com/darkkaiser/store-promoter"}
	frame := &runtime.Frame{Function: "github.com/darkkaiser/store-promoter/internal/rotation.Advance", Line: 42}

	text, ok := newFormatter(opts).(*logrus.TextFormatter)
	require.True(t, ok)
	function, _ := text.CallerPrettyfier(frame)
	assert.Equal(t, ".../internal/rotation.Advance(line:42)", function)

	opts.Format = FormatJSON
	_, ok = newFormatter(opts).(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "***", MaskSecret("short"))
	assert.Equal(t, "abcd***", MaskSecret("abcdefghijklmnop"))
}

func TestWithComponentAndFields(t *testing.T) {
	fields := Fields{"campaign": "iraq"}
	entry := WithComponentAndFields("promoter", fields)

	assert.Equal(t, "promoter", entry.Data["component"])
	assert.Equal(t, "iraq", entry.Data["campaign"])
	assert.NotContains(t, fields, "component", "입력 맵은 변경되지 않아야 합니다")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, WarnLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
