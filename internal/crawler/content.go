package crawler

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// documentSnapshot serializes the whole live document of the tab in ctx
// together with the page origin. Both values are read in one chromedp.Run so
// they describe the same moment.
func documentSnapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	if err := chromedp.Run(ctx,
		chromedp.OuterHTML("html", &s.HTML, chromedp.ByQuery),
		chromedp.Evaluate(originJS, &s.Origin),
	); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot document: %w", err)
	}
	return s, nil
}
