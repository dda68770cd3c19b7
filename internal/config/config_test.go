package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adockit/internal/asciidoc"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "deflist", cfg.Converter)
	assert.Equal(t, asciidoc.DefaultSearchWindow, cfg.SearchWindow)
	assert.Equal(t, "shorten", cfg.Inline.Overflow)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "deflist", cfg.Converter)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adockit.yaml")
	data := `converter: bullets
search_window: 25
inline:
  max_comment_length: 80
  overflow: list
logging:
  level: debug
languages:
  mylang:
    open: ";;"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bullets", cfg.Converter)
	assert.Equal(t, 25, cfg.SearchWindow)
	assert.Equal(t, 80, cfg.Inline.MaxCommentLength)
	assert.Equal(t, "list", cfg.Inline.Overflow)
	assert.Equal(t, "debug", cfg.Logging.Level)

	style := asciidoc.CommentStyleFor("mylang")
	assert.Equal(t, ";;", style.Open)
}

func TestLoadInvalidConverter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adockit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("converter: sidebar\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown converter")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ADOCKIT_CONVERTER", "inline")
	t.Setenv("ADOCKIT_SEARCH_WINDOW", "42")
	t.Setenv("ADOCKIT_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "inline", cfg.Converter)
	assert.Equal(t, 42, cfg.SearchWindow)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestEnvOverrideBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adockit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("converter: bullets\n"), 0644))
	t.Setenv("ADOCKIT_CONVERTER", "deflist")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deflist", cfg.Converter)
}
