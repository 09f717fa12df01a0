package logger

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Debug records are kept only when
// verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// LogArticle emits a debug-level structured log for an extracted article.
// It logs message "parsed_article" with attrs: number, title, link.
// If l is nil, slog.Default() is used.
func LogArticle(l *slog.Logger, number int, title, link string) {
	if l == nil {
		l = slog.Default()
	}
	l.Debug("parsed_article",
		slog.Int("number", number),
		slog.String("title", title),
		slog.String("link", link),
	)
}

// LogDownload emits an info-level log when a file emission has been started.
// It does not mean the file landed on disk.
// If l is nil, slog.Default() is used.
func LogDownload(l *slog.Logger, name, dir string) {
	if l == nil {
		l = slog.Default()
	}
	l.Info("download initiated",
		slog.String("file", name),
		slog.String("dir", dir),
	)
}

// WithSession returns l annotated with the session id.
// If l is nil, slog.Default() is used.
func WithSession(l *slog.Logger, id string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With(slog.String("session", id))
}
