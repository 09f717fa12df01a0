package crawler

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Snapshot is a serialized copy of the live document.
type Snapshot struct {
	HTML   string
	Origin string
}

// Page is the part of a browser tab the scroll session and the extractor
// need. chromePage implements it over chromedp; tests use fakes.
type Page interface {
	ViewportHeight(ctx context.Context) (float64, error)
	ScrollHeight(ctx context.Context) (int64, error)
	ScrollBy(ctx context.Context, dy float64) error
	Snapshot(ctx context.Context) (Snapshot, error)
}

// chromePage drives the tab held by a chromedp context. Every method must be
// called with a context derived from that tab.
type chromePage struct{}

func (chromePage) ViewportHeight(ctx context.Context) (float64, error) {
	var h float64
	if err := chromedp.Run(ctx, chromedp.Evaluate(viewportHeightJS, &h)); err != nil {
		return 0, fmt.Errorf("viewport height: %w", err)
	}
	return h, nil
}

func (chromePage) ScrollHeight(ctx context.Context) (int64, error) {
	var h int64
	if err := chromedp.Run(ctx, chromedp.Evaluate(scrollHeightJS, &h)); err != nil {
		return 0, fmt.Errorf("scroll height: %w", err)
	}
	return h, nil
}

func (chromePage) ScrollBy(ctx context.Context, dy float64) error {
	var ok bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(scrollByJS(dy), &ok)); err != nil {
		return fmt.Errorf("scroll by %v: %w", dy, err)
	}
	return nil
}

func (chromePage) Snapshot(ctx context.Context) (Snapshot, error) {
	return documentSnapshot(ctx)
}
