// Package report renders a table as a static, searchable HTML page.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/sheetpub/sheetpub/sheet"
)

// Page defaults, matching the published activity report.
const (
	DefaultTitle       = "Report Kegiatan Program - YBM BRILiaN"
	DefaultLang        = "id"
	DefaultNote        = "Sumber: Excel terbaru via Microsoft Graph | Dibangun otomatis"
	DefaultPlaceholder = "Cari..."
)

//go:embed report.html.tmpl
var pageSource string

var page = template.Must(template.New("report").Parse(pageSource))

// Options controls the page chrome around the table.
type Options struct {
	Title       string
	Lang        string
	Note        string
	Placeholder string
}

type pageData struct {
	Options
	Columns []string
	Records [][]string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Lang == "" {
		o.Lang = DefaultLang
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	return o
}

// Render writes t as an HTML page to w. Cell text and column names are
// escaped; missing cells render as empty cells.
func Render(w io.Writer, t sheet.Table, opts Options) error {
	data := pageData{
		Options: opts.withDefaults(),
		Columns: t.Columns,
		Records: sheet.Normalize(t).Records(),
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// Bytes renders t into memory.
func Bytes(t sheet.Table, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, t, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write creates the parent directories of path and overwrites path with
// html.
func Write(path string, html []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Debug().Str("path", path).Int("bytes", len(html)).Msg("wrote report")
	return nil
}
