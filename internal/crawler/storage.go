package crawler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"writeups-article-list/internal/document"
)

const (
	textRule   = "========================================="
	textDivide = "-----------------------------------------"
)

// EncodeJSON encodes the articles as a pretty JSON array with two-space
// indentation. HTML characters in titles are kept as typed.
func EncodeJSON(articles []document.Article) ([]byte, error) {
	if articles == nil {
		articles = []document.Article{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// EncodeText renders the plain-text report: a header block naming the site
// and the total, then one four-line block per article.
func EncodeText(siteTitle string, articles []document.Article) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Article List\n", siteTitle)
	fmt.Fprintf(&b, "Total Articles Found: %d\n", len(articles))
	b.WriteString(textRule + "\n\n")
	for _, a := range articles {
		fmt.Fprintf(&b, "Article #%d\n", a.Number)
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Link: %s\n", a.Link)
		b.WriteString(textDivide + "\n")
	}
	return []byte(b.String())
}

// EncodeCSV encodes the articles as CSV with header.
func EncodeCSV(articles []document.Article) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// header
	if err := w.Write([]string{"number", "title", "link"}); err != nil {
		return nil, err
	}
	for _, a := range articles {
		if err := w.Write([]string{strconv.Itoa(a.Number), a.Title, a.Link}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeMarkdown renders the articles as a Markdown document with one table.
func EncodeMarkdown(siteTitle string, articles []document.Article) ([]byte, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	md.H1(siteTitle + " Article List")
	md.PlainText("")
	md.PlainText("Total Articles Found: " + strconv.Itoa(len(articles)))
	md.PlainText("")
	if len(articles) > 0 {
		md.Table(articleTable(articles, 0))
	}
	if err := md.Build(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// articleTable builds the # / Title / Link table. Titles wider than
// maxTitle terminal cells are truncated; 0 keeps them whole.
func articleTable(articles []document.Article, maxTitle int) markdown.TableSet {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{
			strconv.Itoa(a.Number),
			escapeCell(truncateWidth(a.Title, maxTitle)),
			escapeCell(a.Link),
		})
	}
	return markdown.TableSet{
		Header: []string{"#", "Title", "Link"},
		Rows:   rows,
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
