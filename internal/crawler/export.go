package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/markdown"

	"writeups-article-list/internal/document"
)

// Export file names and formats.
const (
	FileBaseName = "article_list"

	FormatJSON     = "json"
	FormatText     = "txt"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
)

const (
	defaultSiteTitle  = "InfoSec Write-ups (Bug Bounty)"
	consoleTitleWidth = 60
	consoleRule       = "================================================="
)

var formatMIME = map[string]string{
	FormatJSON:     "application/json",
	FormatText:     "text/plain",
	FormatCSV:      "text/csv",
	FormatMarkdown: "text/markdown",
}

// Exporter turns one extraction into files and a console summary.
type Exporter struct {
	SiteTitle string
	// Formats lists extra formats beyond json and txt, which are always written.
	Formats []string
	Emitter Emitter
	Console io.Writer
	Logger  *slog.Logger
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithSiteTitle sets the site name used in report headers. Empty keeps the default.
func WithSiteTitle(title string) ExportOption {
	return func(e *Exporter) {
		if title != "" {
			e.SiteTitle = title
		}
	}
}

// WithFormats adds export formats on top of json and txt.
func WithFormats(formats ...string) ExportOption {
	return func(e *Exporter) { e.Formats = append(e.Formats, formats...) }
}

// WithConsole sets where the summary table is printed. Defaults to stdout.
func WithConsole(w io.Writer) ExportOption { return func(e *Exporter) { e.Console = w } }

// WithExportLogger sets the logger. Defaults to slog.Default().
func WithExportLogger(l *slog.Logger) ExportOption { return func(e *Exporter) { e.Logger = l } }

// NewExporter constructs an Exporter emitting through em.
func NewExporter(em Emitter, opts ...ExportOption) *Exporter {
	e := &Exporter{
		SiteTitle: defaultSiteTitle,
		Emitter:   em,
		Console:   os.Stdout,
		Logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.Console == nil {
		e.Console = io.Discard
	}
	if e.Logger == nil {
		e.Logger = slog.Default()
	}
	return e
}

// FileName returns the export file name for format.
func FileName(format string) string {
	return FileBaseName + "." + format
}

// formats returns json and txt followed by the distinct extra formats.
func (e *Exporter) formats() []string {
	out := []string{FormatJSON, FormatText}
	seen := map[string]bool{FormatJSON: true, FormatText: true}
	for _, f := range e.Formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func (e *Exporter) encode(format string, articles []document.Article) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(articles)
	case FormatText:
		return EncodeText(e.SiteTitle, articles), nil
	case FormatCSV:
		return EncodeCSV(articles)
	case FormatMarkdown:
		return EncodeMarkdown(e.SiteTitle, articles)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// Export writes every format through the emitter, then prints the summary.
// A failing format does not stop the others; all failures are joined into
// the returned error. Calling Export twice emits every file twice.
func (e *Exporter) Export(ctx context.Context, articles []document.Article) error {
	var errs []error
	for _, f := range e.formats() {
		name := FileName(f)
		data, err := e.encode(f, articles)
		if err != nil {
			e.Logger.Error("encode failed", "file", name, "error", err)
			errs = append(errs, fmt.Errorf("encode %s: %w", name, err))
			continue
		}
		if err := e.Emitter.Emit(ctx, name, formatMIME[f], data); err != nil {
			e.Logger.Error("emit failed", "file", name, "error", err)
			errs = append(errs, err)
		}
	}

	if err := e.printSummary(articles); err != nil {
		errs = append(errs, fmt.Errorf("print summary: %w", err))
	}
	return errors.Join(errs...)
}

func (e *Exporter) printSummary(articles []document.Article) error {
	w := e.Console
	fmt.Fprintf(w, "\n--- FINAL RESULTS: %s ---\n", e.SiteTitle)
	fmt.Fprintf(w, "\nTotal Unique Articles Counted: %d\n\n", len(articles))

	if len(articles) > 0 {
		md := markdown.NewMarkdown(w)
		md.Table(articleTable(articles, consoleTitleWidth))
		if err := md.Build(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, consoleRule)
	fmt.Fprintf(w, "Extraction complete! Check %s for the files.\n", e.Emitter.Dir())
	_, err := fmt.Fprintln(w, consoleRule)
	return err
}
