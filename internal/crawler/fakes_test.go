package crawler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// fakePage is an in-memory Page. Every scroll grows the document by grow
// pixels, like a listing that keeps loading previews.
type fakePage struct {
	mu       sync.Mutex
	viewport float64
	height   int64
	grow     int64
	scrolled []float64
	html     string
	origin   string

	viewportErr error
	snapErr     error
}

func (p *fakePage) ViewportHeight(context.Context) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewport, p.viewportErr
}

func (p *fakePage) ScrollHeight(context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.height, nil
}

func (p *fakePage) ScrollBy(_ context.Context, dy float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrolled = append(p.scrolled, dy)
	p.height += p.grow
	return nil
}

func (p *fakePage) Snapshot(context.Context) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snapErr != nil {
		return Snapshot{}, p.snapErr
	}
	return Snapshot{HTML: p.html, Origin: p.origin}, nil
}

func (p *fakePage) scrolls() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]float64(nil), p.scrolled...)
}

type emitted struct {
	name, mime string
	data       []byte
}

// fakeEmitter records every emitted file; names listed in fail are rejected.
type fakeEmitter struct {
	mu    sync.Mutex
	files []emitted
	fail  map[string]bool
}

func (e *fakeEmitter) Emit(_ context.Context, name, mimeType string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fail[name] {
		return errors.New("blocked: " + name)
	}
	e.files = append(e.files, emitted{name: name, mime: mimeType, data: data})
	return nil
}

func (e *fakeEmitter) Dir() string { return "/downloads" }

func (e *fakeEmitter) names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, f := range e.files {
		out = append(out, f.name)
	}
	return out
}

func (e *fakeEmitter) file(name string) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.files) - 1; i >= 0; i-- {
		if e.files[i].name == name {
			return e.files[i].data
		}
	}
	return nil
}

// capHandler captures log records for assertions.
type capHandler struct {
	mu   sync.Mutex
	recs []slog.Record
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recs = append(h.recs, r.Clone())
	return nil
}
func (h *capHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *capHandler) WithGroup(string) slog.Handler      { return h }

func (h *capHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.recs {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}
	return out
}

func newTestExporter(em Emitter, console io.Writer, l *slog.Logger) *Exporter {
	if console == nil {
		console = &bytes.Buffer{}
	}
	return NewExporter(em, WithConsole(console), WithExportLogger(l))
}
