package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"writeups-article-list/internal/document"
	"writeups-article-list/internal/logger"
)

// DefaultScrollInterval is the period between two scroll steps.
const DefaultScrollInterval = 100 * time.Millisecond

// ErrSessionStopped is returned by Start once the session has been stopped.
// A session scrolls at most once; reload the page for a new one.
var ErrSessionStopped = errors.New("scroll session already stopped")

// SessionConfig holds the tunables of a Session.
type SessionConfig struct {
	Interval  time.Duration
	Selectors Selectors
	Logger    *slog.Logger
}

// Session owns the auto-scroll ticker of one page and the stop command that
// ends it. It is either running (ticker active) or stopped.
type Session struct {
	ID string

	page      Page
	exporter  *Exporter
	interval  time.Duration
	selectors Selectors
	logger    *slog.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc // non-nil while running
	done     chan struct{}      // closed when the tick loop exits
	stopped  bool
	distance float64

	lastHeight atomic.Int64
	ticks      atomic.Int64
}

// NewSession returns a stopped session over page. Zero config values fall
// back to DefaultScrollInterval, DefaultSelectors and slog.Default().
func NewSession(page Page, exp *Exporter, cfg SessionConfig) *Session {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultScrollInterval
	}
	if cfg.Selectors == (Selectors{}) {
		cfg.Selectors = DefaultSelectors
	}
	id := uuid.NewString()
	return &Session{
		ID:        id,
		page:      page,
		exporter:  exp,
		interval:  cfg.Interval,
		selectors: cfg.Selectors,
		logger:    logger.WithSession(cfg.Logger, id),
	}
}

// Running reports whether the scroll ticker is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// LastHeight is the document height seen by the most recent tick.
func (s *Session) LastHeight() int64 { return s.lastHeight.Load() }

// Ticks is the number of scroll steps taken so far.
func (s *Session) Ticks() int64 { return s.ticks.Load() }

// Start begins scrolling by a quarter of the viewport height every interval
// until Stop is called or ctx ends. Starting a running session only logs.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.logger.Info("auto-scroll already running")
		return nil
	}
	if s.stopped {
		return ErrSessionStopped
	}

	vh, err := s.page.ViewportHeight(ctx)
	if err != nil {
		return fmt.Errorf("start scrolling: %w", err)
	}
	s.distance = vh / 4

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(loopCtx, s.done)

	s.logger.Info("scrolling started",
		slog.Duration("interval", s.interval),
		slog.Float64("distance", s.distance),
	)
	return nil
}

func (s *Session) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.tick(ctx)
		}
	}
}

// tick records the document height and scrolls one step. An unchanged height
// is only logged; scrolling never stops on its own.
func (s *Session) tick(ctx context.Context) {
	s.ticks.Add(1)
	h, err := s.page.ScrollHeight(ctx)
	switch {
	case err != nil:
		if ctx.Err() == nil {
			s.logger.Warn("read scroll height", "error", err)
		}
	case h == s.lastHeight.Load():
		s.logger.Debug("page height unchanged, content loading may be stalled", "height", h)
	default:
		s.lastHeight.Store(h)
	}

	if err := s.page.ScrollBy(ctx, s.distance); err != nil && ctx.Err() == nil {
		s.logger.Warn("scroll", "error", err)
	}
}

// Stop halts the ticker if it is running and then runs exactly one
// extraction and export of the current page. Stopping an already stopped
// session logs a warning and still extracts, so every call emits files anew.
func (s *Session) Stop(ctx context.Context) ([]document.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		<-s.done
		s.cancel, s.done = nil, nil
		s.stopped = true
		s.logger.Info("scrolling stopped manually, proceeding to extraction",
			slog.Int64("ticks", s.ticks.Load()),
			slog.Int64("height", s.lastHeight.Load()),
		)
	} else {
		s.stopped = true
		s.logger.Warn("scrolling already stopped or never started, running extraction only")
	}
	return s.extract(ctx)
}

func (s *Session) extract(ctx context.Context) ([]document.Article, error) {
	snap, err := s.page.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := Extract(snap.HTML, snap.Origin, s.selectors)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		logger.LogArticle(s.logger, a.Number, a.Title, a.Link)
	}
	s.logger.Info("extraction finished", slog.Int("articles", len(articles)))

	if err := s.exporter.Export(ctx, articles); err != nil {
		return articles, fmt.Errorf("export: %w", err)
	}
	return articles, nil
}
