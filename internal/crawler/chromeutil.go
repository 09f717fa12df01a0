package crawler

import (
	"context"

	"github.com/chromedp/chromedp"
)

// newBrowserContext starts a Chrome allocator and a browser tab derived from
// parent. The returned cancel function closes the tab and then the browser.
func newBrowserContext(parent context.Context, headless bool, userAgent string) (context.Context, context.CancelFunc) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("ignore-certificate-errors", true),
	)
	if userAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(userAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)
	return ctx, func() {
		cancel()
		cancelAlloc()
	}
}
