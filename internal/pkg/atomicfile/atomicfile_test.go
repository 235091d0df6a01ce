package atomicfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	require.NoError(t, WriteFile(path, []byte(`{"lastIndex":0}`), 0644))
	require.NoError(t, WriteFile(path, []byte(`{"lastIndex":1}`), 0644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"lastIndex":1}`, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "임시 파일이 남지 않아야 합니다")
}

func TestWriteFile_DirIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := WriteFile(filepath.Join(blocker, "state.json"), []byte("x"), 0644)
	assert.Error(t, err)
}

func TestCleanupStale(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, ".state.json-123"+TempSuffix)
	fresh := filepath.Join(dir, ".state.json-456"+TempSuffix)
	regular := filepath.Join(dir, "state.json")
	for _, p := range []string{stale, fresh, regular} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(regular, old, old))

	removed, err := CleanupStale(dir, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{stale}, removed)

	assert.FileExists(t, fresh)
	assert.FileExists(t, regular)
	assert.NoFileExists(t, stale)
}

func TestCleanupStale_MissingDir(t *testing.T) {
	_, err := CleanupStale(filepath.Join(t.TempDir(), "missing"), time.Hour)
	assert.Error(t, err)
}
