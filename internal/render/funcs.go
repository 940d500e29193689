package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/KKangHHee/portfolio/internal/content"
)

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"url":       r.site.Link,
		"route":     r.site.Route,
		"markdown":  r.Markdown,
		"inline":    r.Inline,
		"trend":     trend,
		"date":      formatDate,
		"hasPrefix": strings.HasPrefix,
		"external":  content.IsExternal,
		"tagSlug":   content.TagSlug,
	}
}

// trend maps a table cell ending in an arrow to its CSS class.
func trend(cell string) string {
	cell = strings.TrimSpace(cell)
	switch {
	case strings.HasSuffix(cell, "↓"):
		return "down"
	case strings.HasSuffix(cell, "↑"):
		return "up"
	}
	return ""
}

func formatDate(t time.Time) string {
	return t.Format("2006.01.02")
}
