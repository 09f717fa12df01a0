package crawler

import (
	"fmt"
	"strconv"
)

const (
	viewportHeightJS = `window.innerHeight`
	scrollHeightJS   = `document.body ? document.body.scrollHeight : 0`
	originJS         = `window.location.origin`
)

// scrollByJS scrolls the window down by dy CSS pixels.
func scrollByJS(dy float64) string {
	return fmt.Sprintf(`(() => { window.scrollBy(0, %s); return true; })()`,
		strconv.FormatFloat(dy, 'f', -1, 64))
}

// downloadJS creates a hidden anchor pointing at href with the download
// attribute set to name, clicks it and detaches it again in one synchronous
// sequence. The anchor is removed even when click throws.
func downloadJS(name, href string) string {
	return fmt.Sprintf(`(() => {
	  const a = document.createElement('a');
	  a.setAttribute('href', %s);
	  a.setAttribute('download', %s);
	  a.style.display = 'none';
	  document.body.appendChild(a);
	  try { a.click(); } finally { document.body.removeChild(a); }
	  return true;
	})()`, strconv.Quote(href), strconv.Quote(name))
}
