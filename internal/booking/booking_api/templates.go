package booking_api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"ms-showcase/internal/flash"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	DateFull   = "Monday January, 2 2006 at 3:04PM"
	DateMedium = "Mon 01, 02, 2006 3:04PM"
)

var funcs = template.FuncMap{
	"datetime": FormatDatetime,
	"has":      contains,
	"join":     strings.Join,
}

// FormatDatetime renders t with the named layout: "full" or "medium".
func FormatDatetime(t time.Time, format string) string {
	switch format {
	case "full":
		return t.Format(DateFull)
	case "medium":
		return t.Format(DateMedium)
	default:
		return t.Format(format)
	}
}

// pages holds one template set per page, each parsed together with the
// shared layout.
type pages map[string]*template.Template

func loadPages() (pages, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	names, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	out := make(pages)
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		t, err := template.Must(layout.Clone()).ParseFS(templatesFS, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		out[strings.TrimSuffix(base, ".html")] = t
	}
	return out, nil
}

// page is the data every template receives.
type page struct {
	Title   string
	Flashes []flash.Message
	Data    interface{}
	Form    interface{}
	Errors  FieldErrors
	Action  string
	Genres  []string
	States  []string
}

func (p pages) render(w http.ResponseWriter, status int, name string, data page) error {
	t, ok := p[name]
	if !ok {
		return fmt.Errorf("no template %q", name)
	}
	if data.Genres == nil {
		data.Genres = Genres
	}
	if data.States == nil {
		data.States = States
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
