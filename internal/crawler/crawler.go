package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"writeups-article-list/internal/document"
)

const defaultNavigationTimeout = 60 * time.Second

// Crawler holds reusable configuration between runs.
type Crawler struct {
	ScrollInterval    time.Duration
	StopAfter         time.Duration
	NavigationTimeout time.Duration
	Headless          bool
	UserAgent         string
	Selectors         Selectors
	Logger            *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithScrollInterval sets the period between scroll steps. Non-positive values keep the default.
func WithScrollInterval(d time.Duration) Option {
	return func(c *Crawler) {
		if d > 0 {
			c.ScrollInterval = d
		}
	}
}

// WithStopAfter schedules a stop command d after scrolling starts. Negative values are clamped to 0 (never).
func WithStopAfter(d time.Duration) Option {
	if d < 0 {
		d = 0
	}
	return func(c *Crawler) { c.StopAfter = d }
}

// WithNavigationTimeout bounds loading the listing page. Non-positive values keep the default.
func WithNavigationTimeout(d time.Duration) Option {
	return func(c *Crawler) {
		if d > 0 {
			c.NavigationTimeout = d
		}
	}
}

// WithHeadless sets whether to run Chrome in headless mode.
func WithHeadless(b bool) Option { return func(c *Crawler) { c.Headless = b } }

// WithUserAgent overrides the browser user agent. Empty keeps Chrome's own.
func WithUserAgent(ua string) Option { return func(c *Crawler) { c.UserAgent = ua } }

// WithSelectors sets the preview selectors.
func WithSelectors(s Selectors) Option { return func(c *Crawler) { c.Selectors = s } }

// WithLogger sets the logger. If nil, slog.Default() is used.
func WithLogger(l *slog.Logger) Option { return func(c *Crawler) { c.Logger = l } }

// NewCrawler constructs a Crawler using the provided functional options.
func NewCrawler(opts ...Option) *Crawler {
	c := &Crawler{
		ScrollInterval:    DefaultScrollInterval,
		NavigationTimeout: defaultNavigationTimeout,
		Headless:          true,
		Selectors:         DefaultSelectors,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// ExporterFactory builds the exporter once the browser tab exists, so an
// emitter may drive that tab.
type ExporterFactory func(tab context.Context) (*Exporter, error)

// Run opens url in a fresh browser, scrolls it until stop fires or the
// scheduled stop elapses, then stops the session and returns what the single
// extraction found. Cancelling ctx aborts without extracting.
func (c *Crawler) Run(ctx context.Context, url string, stop <-chan struct{}, newExporter ExporterFactory) ([]document.Article, error) {
	tab, cancel := newBrowserContext(ctx, c.Headless, c.UserAgent)
	defer cancel()

	// Start the browser on the tab context itself; a timeout context on the
	// first Run would close the browser when it expires.
	if err := chromedp.Run(tab); err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}
	if err := navigate(tab, url, c.NavigationTimeout); err != nil {
		return nil, err
	}
	c.Logger.Info("page loaded", "url", url)

	exp, err := newExporter(tab)
	if err != nil {
		return nil, fmt.Errorf("prepare export: %w", err)
	}

	sess := NewSession(chromePage{}, exp, SessionConfig{
		Interval:  c.ScrollInterval,
		Selectors: c.Selectors,
		Logger:    c.Logger,
	})
	if err := sess.Start(tab); err != nil {
		return nil, err
	}

	var scheduled <-chan time.Time
	if c.StopAfter > 0 {
		t := time.NewTimer(c.StopAfter)
		defer t.Stop()
		scheduled = t.C
	}

	select {
	case <-stop:
	case <-scheduled:
		c.Logger.Info("scheduled stop reached", "after", c.StopAfter)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return sess.Stop(tab)
}

func navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("load %s: %w", url, err)
	}
	return nil
}
