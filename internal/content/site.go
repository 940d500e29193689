package content

import (
	"strconv"
	"strings"
)

const (
	defaultLocale       = "ko"
	defaultPostsPerPage = 10
)

func (s *Site) applyDefaults() {
	if s.BaseURL == "" {
		s.BaseURL = "/"
	}
	if s.Locale == "" {
		s.Locale = defaultLocale
	}
	if s.TrailingSlash == nil {
		t := true
		s.TrailingSlash = &t
	}
	if s.OnBrokenLinks == "" {
		s.OnBrokenLinks = "throw"
	}
	if s.ColorMode.DefaultMode == "" {
		s.ColorMode.DefaultMode = "light"
	}
	if s.Blog.PostsPerPage <= 0 {
		s.Blog.PostsPerPage = defaultPostsPerPage
	}
	if s.Blog.Title == "" {
		s.Blog.Title = "Blog"
	}
}

// UseTrailingSlash reports whether routes end with a slash.
func (s Site) UseTrailingSlash() bool {
	return s.TrailingSlash == nil || *s.TrailingSlash
}

// Route normalizes an internal path to the configured slash form.
// File-like paths (with an extension) are left alone.
func (s Site) Route(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if hasExt(p) {
		return p
	}
	p = strings.TrimSuffix(p, "/")
	if s.UseTrailingSlash() {
		return p + "/"
	}
	return p
}

// Link turns an internal path into a URL under the base URL.
// External URLs, mailto links and pure fragments pass through.
func (s Site) Link(p string) string {
	if IsExternal(p) || strings.HasPrefix(p, "#") {
		return p
	}
	path, frag := p, ""
	if i := strings.IndexByte(p, '#'); i >= 0 {
		path, frag = p[:i], p[i:]
	}
	base := strings.TrimSuffix(s.BaseURL, "/")
	return base + s.Route(path) + frag
}

// AbsoluteURL joins the site URL with Link(p).
func (s Site) AbsoluteURL(p string) string {
	if IsExternal(p) {
		return p
	}
	return strings.TrimSuffix(s.URL, "/") + s.Link(p)
}

// Copyright renders the footer copyright for the given year.
func (s Site) Copyright(year int) string {
	return strings.ReplaceAll(s.Footer.Copyright, "{year}", strconv.Itoa(year))
}

// IsExternal reports whether the link carries a URL scheme.
func IsExternal(p string) bool {
	i := strings.IndexByte(p, ':')
	if i <= 0 {
		return false
	}
	for _, r := range p[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

func hasExt(p string) bool {
	last := p[strings.LastIndexByte(p, '/')+1:]
	return strings.Contains(last, ".")
}
