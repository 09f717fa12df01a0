// Package crawler drives a listing page in headless Chrome: it scrolls the
// page on a fixed ticker so lazy previews load, and on the stop command
// extracts every preview's title and link and exports them as files.
package crawler
