package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "downloads", cfg.DumpDir)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, "dicts", cfg.OutDir)
	require.Equal(t, "de", cfg.ReferenceWiki)
	require.Equal(t, 450.0, cfg.RealArticleThreshold)
	require.Equal(t, 0, cfg.Workers)
	require.False(t, cfg.StripMarkup)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REFERENCE_WIKI", "en")
	t.Setenv("REAL_ARTICLE_THRESHOLD", "600")
	t.Setenv("WORKERS", "4")
	t.Setenv("STRIP_MARKUP", "true")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "en", cfg.ReferenceWiki)
	require.Equal(t, 600.0, cfg.RealArticleThreshold)
	require.Equal(t, 4, cfg.Workers)
	require.True(t, cfg.StripMarkup)
}

func TestLoadRejectsNegativeThreshold(t *testing.T) {
	t.Setenv("REAL_ARTICLE_THRESHOLD", "-1")

	_, err := Load()
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLevel(" WARN "))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel("anything"))
}
