package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, 4, cfg.TabWidth())
	require.Equal(t, "    ", cfg.TabStr())
	require.Equal(t, 1000, cfg.MaxUndoEntries())
	require.Empty(t, cfg.RecoveryDirectory())
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	require.Equal(t, 4, cfg.TabWidth())
}

func TestLoad_OverlaysDocumentOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.json")
	doc := `{"editor":{"tabSize":2},"ui":{"theme":"solarized"}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.TabWidth())
	require.Equal(t, 1000, cfg.MaxUndoEntries(), "unset keys should keep their default across a partial overlay")
}

func TestLoad_RejectsOutOfRangeValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.json")
	doc := `{"editor":{"tabSize":999}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSave_RoundTripsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.json")
	seed := `{"editor":{"tabSize":8},"future":{"unknownSetting":"kept"}}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, reloaded.TabWidth())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), "unknownSetting"), "Save() dropped an unrecognized key instead of round-tripping it")
}

func TestFromEnv_OverridesSetting(t *testing.T) {
	t.Setenv("QUILL_EDITOR_TABSIZE", "3")

	cfg := Defaults().FromEnv(EnvPrefix)
	require.Equal(t, 3, cfg.TabWidth())
}
