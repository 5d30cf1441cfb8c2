package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvToken, "")
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
	assert.Equal(t, []string{"files", "file", "find"}, cfg.FileAliases)
	assert.Equal(t, "overlay", cfg.Variant)
	assert.NotEmpty(t, cfg.Log.Path)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte(`
backend_url = "http://files.local:9000/"
variant = "launcher"
debounce_ms = 150
search_limit = 25
file_aliases = ["docs"]

[log]
level = "debug"
`), 0o644))
	t.Setenv(EnvURL, "")
	t.Setenv(EnvToken, "s3cret")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://files.local:9000", cfg.BackendURL)
	assert.Equal(t, "launcher", cfg.Variant)
	assert.Equal(t, 150, cfg.DebounceMS)
	assert.Equal(t, 25, cfg.SearchLimit)
	assert.Equal(t, 5, cfg.CommandCap)
	assert.Equal(t, []string{"docs"}, cfg.FileAliases)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "s3cret", cfg.Token)

	t.Setenv(EnvURL, "http://override:1")
	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://override:1", cfg.BackendURL)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Setenv(EnvURL, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("debounce_ms = [oops"), 0o644))

	cfg, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, Defaults().DebounceMS, cfg.DebounceMS)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv(EnvURL, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte(`
variant = "floating"
debounce_ms = -5
history_turns = -1
`), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "overlay", cfg.Variant)
	assert.Equal(t, 200, cfg.DebounceMS)
	assert.Equal(t, 0, cfg.HistoryTurns)
}

func TestSave_RoundTripWithoutToken(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvToken, "")
	dir := t.TempDir()

	cfg := Defaults()
	cfg.Theme = "light"
	cfg.SearchLimit = 7
	cfg.Token = "do-not-write"
	require.NoError(t, Save(dir, cfg))

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "do-not-write")

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, 7, got.SearchLimit)
	assert.Empty(t, got.Token)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	t.Setenv(EnvURL, "")
	dir := t.TempDir()
	require.NoError(t, Save(dir, Defaults()))

	w, err := Watch(dir)
	require.NoError(t, err)
	defer w.Close()

	cfg := Defaults()
	cfg.DebounceMS = 320
	require.NoError(t, Save(dir, cfg))

	deadline := time.After(3 * time.Second)
	for {
		select {
		case r := <-w.Reloads():
			require.NoError(t, r.Err)
			if r.Config.DebounceMS == 320 {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := Watch(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
