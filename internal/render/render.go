// Package render turns content records into HTML pages.
//
// Templates are parsed once: a base layout plus shared partials, cloned
// for every page template under pages/. A Renderer is safe for
// concurrent use.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/KKangHHee/portfolio/internal/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var ErrUnknownTemplate = errors.New("render: unknown template")

// PageData is the value every page template executes against.
type PageData struct {
	Site        content.Site
	Path        string
	Title       string
	Description string
	Year        int
	Body        any
}

type Renderer struct {
	site  content.Site
	md    goldmark.Markdown
	pages map[string]*template.Template
	now   func() time.Time
}

type Option func(*Renderer)

// WithClock overrides the clock used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// New parses base.html, partials/*.html and pages/*.html from fsys.
func New(fsys fs.FS, site content.Site, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		site: site,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		pages: make(map[string]*template.Template),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	root, err := template.New("base").Funcs(r.funcMap()).ParseFS(fsys, "base.html", "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse base/partial templates: %w", err)
	}

	pages, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("list page templates: %w", err)
	}
	for _, name := range pages {
		t, err := root.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", name, err)
		}
		if _, err := t.ParseFS(fsys, name); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(path.Base(name), ".html")] = t
	}
	return r, nil
}

// Templates lists the page template names.
func (r *Renderer) Templates() []string {
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render executes the page template into w. Nothing is written on error.
func (r *Renderer) Render(w io.Writer, name string, data PageData) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	if data.Year == 0 {
		data.Year = r.now().Year()
	}
	if data.Site.Title == "" {
		data.Site = r.site
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Markdown converts a Markdown document to HTML.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Inline converts a single line of Markdown without the paragraph wrapper.
func (r *Renderer) Inline(src string) (template.HTML, error) {
	out, err := r.Markdown(src)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(out))
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") && strings.Count(s, "<p>") == 1 {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<p>"), "</p>")
	}
	return template.HTML(s), nil
}
