// Package config holds the run settings of the article list exporter and
// loads them from YAML.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
)

// AppName names the configuration directory under XDG_CONFIG_HOME.
const AppName = "writeups-article-list"

// Defaults.
const (
	DefaultURL               = "https://infosecwriteups.com/tagged/bug-bounty"
	DefaultSiteTitle         = "InfoSec Write-ups (Bug Bounty)"
	DefaultScrollInterval    = 100 * time.Millisecond
	DefaultNavigationTimeout = 60 * time.Second
	DefaultDownloadTimeout   = 10 * time.Second
	DefaultArticleSelector   = `article[data-testid="post-preview"]`
	DefaultTitleSelector     = "h2"
	DefaultLinkSelector      = `a[rel="noopener follow"][href*="/p/"], a[rel="noopener follow"][href^="/"]`
)

// Emit modes.
const (
	EmitFile    = "file"
	EmitBrowser = "browser"
)

// Export formats. JSON and text are always written.
const (
	FormatJSON     = "json"
	FormatText     = "txt"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
)

// KnownFormats lists every format an exporter can encode.
var KnownFormats = []string{FormatJSON, FormatText, FormatCSV, FormatMarkdown}

// Selectors are the CSS selectors used to read previews from the listing.
type Selectors struct {
	Article string `yaml:"article"`
	Title   string `yaml:"title"`
	Link    string `yaml:"link"`
}

// Config is the full set of settings for one run.
type Config struct {
	URL               string        `yaml:"url"`
	SiteTitle         string        `yaml:"site_title"`
	Headless          bool          `yaml:"headless"`
	ScrollInterval    time.Duration `yaml:"scroll_interval"`
	StopAfter         time.Duration `yaml:"stop_after"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	DownloadTimeout   time.Duration `yaml:"download_timeout"`
	OutputDir         string        `yaml:"output_dir"`
	Emit              string        `yaml:"emit"`
	Formats           []string      `yaml:"formats"`
	UserAgent         string        `yaml:"user_agent"`
	Selectors         Selectors     `yaml:"selectors"`
}

// Default returns a Config populated with the default values.
func Default() *Config {
	return &Config{
		URL:               DefaultURL,
		SiteTitle:         DefaultSiteTitle,
		Headless:          true,
		ScrollInterval:    DefaultScrollInterval,
		NavigationTimeout: DefaultNavigationTimeout,
		DownloadTimeout:   DefaultDownloadTimeout,
		OutputDir:         DownloadDir(),
		Emit:              EmitFile,
		Formats:           []string{FormatJSON, FormatText},
		UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		Selectors: Selectors{
			Article: DefaultArticleSelector,
			Title:   DefaultTitleSelector,
			Link:    DefaultLinkSelector,
		},
	}
}

// Validate checks the configuration for values the run cannot work with.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrNoURL
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, c.URL)
	}
	if c.ScrollInterval <= 0 {
		return ErrInvalidInterval
	}
	if c.StopAfter < 0 {
		return ErrInvalidStopAfter
	}
	if c.Emit != EmitFile && c.Emit != EmitBrowser {
		return fmt.Errorf("%w: %q", ErrUnknownEmitMode, c.Emit)
	}
	for _, f := range c.Formats {
		if !slices.Contains(KnownFormats, f) {
			return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
	}
	if c.Selectors.Article == "" {
		return fmt.Errorf("%w: article", ErrEmptySelector)
	}
	if c.Selectors.Title == "" {
		return fmt.Errorf("%w: title", ErrEmptySelector)
	}
	if c.Selectors.Link == "" {
		return fmt.Errorf("%w: link", ErrEmptySelector)
	}
	return nil
}

// ExportFormats returns the configured formats with json and txt always
// present, json first and txt second, without duplicates.
func (c *Config) ExportFormats() []string {
	out := []string{FormatJSON, FormatText}
	for _, f := range c.Formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// DownloadDir returns the user's download directory, where exports land by default.
func DownloadDir() string {
	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download
	}
	return "."
}

// ConfigDir returns the directory holding the user-level config file.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
