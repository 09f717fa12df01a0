package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// firstText returns the trimmed text of the first element under s matching
// sel, or fallback when nothing matches.
func firstText(s *goquery.Selection, sel, fallback string) string {
	m := s.Find(sel).First()
	if m.Length() == 0 {
		return fallback
	}
	return strings.TrimSpace(m.Text())
}

// firstAttr returns attr of the first element under s matching sel. The
// fallback is returned when nothing matches or the attribute is missing.
func firstAttr(s *goquery.Selection, sel, attr, fallback string) string {
	v, ok := s.Find(sel).First().Attr(attr)
	if !ok {
		return fallback
	}
	return v
}

// absoluteLink prefixes a root-relative href with origin. Anything else,
// including the link sentinel, is returned unchanged.
func absoluteLink(origin, href string) string {
	if strings.HasPrefix(href, "/") {
		return strings.TrimSuffix(origin, "/") + href
	}
	return href
}
