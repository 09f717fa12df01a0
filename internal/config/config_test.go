package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100*time.Millisecond, cfg.ScrollInterval)
	assert.Equal(t, EmitFile, cfg.Emit)
	assert.True(t, cfg.Headless)
	assert.Equal(t, DefaultArticleSelector, cfg.Selectors.Article)
	assert.Equal(t, "InfoSec Write-ups (Bug Bounty)", cfg.SiteTitle)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"empty url", func(c *Config) { c.URL = "" }, ErrNoURL},
		{"relative url", func(c *Config) { c.URL = "/tagged/bug-bounty" }, ErrInvalidURL},
		{"ftp url", func(c *Config) { c.URL = "ftp://example.com" }, ErrInvalidURL},
		{"zero interval", func(c *Config) { c.ScrollInterval = 0 }, ErrInvalidInterval},
		{"negative stop-after", func(c *Config) { c.StopAfter = -time.Second }, ErrInvalidStopAfter},
		{"bad emit", func(c *Config) { c.Emit = "clipboard" }, ErrUnknownEmitMode},
		{"bad format", func(c *Config) { c.Formats = []string{"xml"} }, ErrUnknownFormat},
		{"blank article selector", func(c *Config) { c.Selectors.Article = "" }, ErrEmptySelector},
		{"blank link selector", func(c *Config) { c.Selectors.Link = "" }, ErrEmptySelector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestExportFormats_AlwaysIncludesJSONAndText(t *testing.T) {
	cfg := Default()
	cfg.Formats = []string{FormatCSV, FormatText, FormatCSV}

	assert.Equal(t, []string{FormatJSON, FormatText, FormatCSV}, cfg.ExportFormats())

	cfg.Formats = nil
	assert.Equal(t, []string{FormatJSON, FormatText}, cfg.ExportFormats())
}

func TestLoadConfigFile_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `url: https://medium.com/some-publication
site_title: Some Publication
scroll_interval: 250ms
stop_after: 2m
emit: browser
formats: [csv]
selectors:
  title: h3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://medium.com/some-publication", cfg.URL)
	assert.Equal(t, "Some Publication", cfg.SiteTitle)
	assert.Equal(t, 250*time.Millisecond, cfg.ScrollInterval)
	assert.Equal(t, 2*time.Minute, cfg.StopAfter)
	assert.Equal(t, EmitBrowser, cfg.Emit)
	assert.Equal(t, "h3", cfg.Selectors.Title)
	assert.Equal(t, DefaultArticleSelector, cfg.Selectors.Article, "unset keys keep defaults")
	assert.True(t, cfg.Headless, "unset keys keep defaults")
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFile_NotFound(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadConfigFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: [unclosed"), 0o644))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigNotFound)
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	assert.Equal(t, path, FindConfigFile(path))
	assert.Empty(t, FindConfigFile(path+".missing"))
}

func TestFindConfigFile_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(DefaultConfigFile, []byte("{}"), 0o644))

	got := FindConfigFile("")
	assert.Equal(t, DefaultConfigFile, filepath.Base(got))
}
