package crawler

import "github.com/mattn/go-runewidth"

// truncateWidth shortens s to at most w terminal cells, ending in "...".
// A non-positive w leaves s untouched.
func truncateWidth(s string, w int) string {
	if w <= 0 || runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "...")
}
