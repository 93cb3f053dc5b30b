package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "language"))

	assert.Equal(t, "en", store.Language())

	require.NoError(t, store.SetLanguage("az"))
	assert.Equal(t, "az", store.Language())

	require.NoError(t, store.SetLanguage("RU"))
	assert.Equal(t, "ru", store.Language())
}

func TestStoreRejectsUnsupported(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "language"))

	assert.Error(t, store.SetLanguage("de"))
	assert.Error(t, store.SetLanguage(""))
	assert.Equal(t, "en", store.Language())
}

func TestStoreInvalidFileDegradesToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "language")
	require.NoError(t, os.WriteFile(path, []byte("klingon\n"), 0o644))

	store := NewStore(path)
	assert.Equal(t, "en", store.Language())
}

func TestStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "language")

	store := NewStore(path)
	require.NoError(t, store.SetLanguage("az"))
	assert.Equal(t, "az", store.Language())
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("az"))
	assert.True(t, Supported("ru"))
	assert.False(t, Supported("tr"))
}
