package crawler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"

	"writeups-article-list/internal/logger"
)

// Emitter hands a finished export file to the user.
type Emitter interface {
	Emit(ctx context.Context, name, mimeType string, data []byte) error
	// Dir is where emitted files end up.
	Dir() string
}

// DirEmitter writes files straight into a directory.
type DirEmitter struct {
	dir    string
	logger *slog.Logger
}

// NewDirEmitter returns an emitter writing into dir. If l is nil,
// slog.Default() is used.
func NewDirEmitter(dir string, l *slog.Logger) *DirEmitter {
	if l == nil {
		l = slog.Default()
	}
	return &DirEmitter{dir: dir, logger: l}
}

func (e *DirEmitter) Dir() string { return e.dir }

// Emit writes data to name inside the emitter directory, creating the
// directory when needed. An existing file is overwritten.
func (e *DirEmitter) Emit(_ context.Context, name, _ string, data []byte) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	logger.LogDownload(e.logger, name, e.dir)
	if err := os.WriteFile(filepath.Join(e.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// dataURL encodes data as a base64 data URL of the given media type.
func dataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";charset=utf-8;base64," + base64.StdEncoding.EncodeToString(data)
}

const defaultDownloadTimeout = 10 * time.Second

// downloadResult reports how a browser download ended.
type downloadResult struct {
	guid string
	err  error
}

// BrowserEmitter saves files through the page itself: each file becomes a
// data URL behind a synthetic anchor click, and Chrome writes the download
// into dir.
type BrowserEmitter struct {
	tab     context.Context
	dir     string
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	waiting map[string]chan downloadResult // suggested filename -> waiter
	guids   map[string]string              // download guid -> suggested filename
}

// NewBrowserEmitter allows downloads in the tab held by tab and routes them
// to dir. Each Emit waits up to timeout for Chrome to finish writing.
func NewBrowserEmitter(tab context.Context, dir string, timeout time.Duration, l *slog.Logger) (*BrowserEmitter, error) {
	if l == nil {
		l = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	e := &BrowserEmitter{
		tab:     tab,
		dir:     abs,
		timeout: timeout,
		logger:  l,
		waiting: make(map[string]chan downloadResult),
		guids:   make(map[string]string),
	}
	chromedp.ListenTarget(tab, e.onEvent)

	if err := chromedp.Run(tab, browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllowAndName).
		WithDownloadPath(abs).
		WithEventsEnabled(true)); err != nil {
		return nil, fmt.Errorf("enable downloads: %w", err)
	}
	return e, nil
}

func (e *BrowserEmitter) Dir() string { return e.dir }

func (e *BrowserEmitter) onEvent(ev any) {
	switch ev := ev.(type) {
	case *browser.EventDownloadWillBegin:
		e.mu.Lock()
		if _, ok := e.waiting[ev.SuggestedFilename]; ok {
			e.guids[ev.GUID] = ev.SuggestedFilename
		}
		e.mu.Unlock()
	case *browser.EventDownloadProgress:
		var res downloadResult
		switch ev.State {
		case browser.DownloadProgressStateCompleted:
			res = downloadResult{guid: ev.GUID}
		case browser.DownloadProgressStateCanceled:
			res = downloadResult{guid: ev.GUID, err: errors.New("download canceled by browser")}
		default:
			return
		}
		e.mu.Lock()
		name, ok := e.guids[ev.GUID]
		ch := e.waiting[name]
		delete(e.guids, ev.GUID)
		e.mu.Unlock()
		if ok && ch != nil {
			select {
			case ch <- res:
			default:
			}
		}
	}
}

// Emit clicks a hidden data-URL anchor in the page and waits for Chrome to
// finish the download, then gives the file its requested name.
func (e *BrowserEmitter) Emit(ctx context.Context, name, mimeType string, data []byte) error {
	ch := make(chan downloadResult, 1)
	e.mu.Lock()
	e.waiting[name] = ch
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		delete(e.waiting, name)
		e.mu.Unlock()
	}()

	var ok bool
	if err := chromedp.Run(e.tab, chromedp.Evaluate(downloadJS(name, dataURL(mimeType, data)), &ok)); err != nil {
		return fmt.Errorf("trigger download of %s: %w", name, err)
	}
	logger.LogDownload(e.logger, name, e.dir)

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()
	select {
	case res := <-ch:
		if res.err != nil {
			return fmt.Errorf("download %s: %w", name, res.err)
		}
		// AllowAndName stores the file under its guid.
		if err := os.Rename(filepath.Join(e.dir, res.guid), filepath.Join(e.dir, name)); err != nil {
			return fmt.Errorf("rename download %s: %w", name, err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("download %s: no completion after %s", name, e.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}
