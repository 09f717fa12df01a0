package crawler

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"writeups-article-list/internal/document"
)

// Selectors locate previews and their fields in the listing document.
type Selectors struct {
	// Article matches one preview container.
	Article string
	// Title matches the heading inside a container.
	Title string
	// Link matches the anchor carrying the published link inside a container.
	Link string
}

// DefaultSelectors match Medium publication listings.
var DefaultSelectors = Selectors{
	Article: `article[data-testid="post-preview"]`,
	Title:   "h2",
	Link:    `a[rel="noopener follow"][href*="/p/"], a[rel="noopener follow"][href^="/"]`,
}

// Extract reads every preview in html in document order. A preview without a
// heading or a qualifying anchor is kept with the matching sentinel; an html
// without previews yields an empty, non-nil slice.
func Extract(html, origin string, sel Selectors) ([]document.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	articles := []document.Article{}
	doc.Find(sel.Article).Each(func(i int, s *goquery.Selection) {
		href := firstAttr(s, sel.Link, "href", document.LinkNotFound)
		articles = append(articles, document.Article{
			Number: i + 1,
			Title:  firstText(s, sel.Title, document.TitleNotFound),
			Link:   absoluteLink(origin, href),
		})
	})
	return articles, nil
}
