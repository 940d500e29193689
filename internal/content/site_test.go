package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteAndLink(t *testing.T) {
	yes, no := true, false
	slash := Site{BaseURL: "/", TrailingSlash: &yes}
	bare := Site{BaseURL: "/site/", TrailingSlash: &no}

	tests := []struct {
		site Site
		in   string
		want string
	}{
		{slash, "/", "/"},
		{slash, "/resume", "/resume/"},
		{slash, "resume/", "/resume/"},
		{slash, "/blog/rss.xml", "/blog/rss.xml"},
		{slash, "/blog/post/#section", "/blog/post/#section"},
		{slash, "https://github.com/KKangHHee", "https://github.com/KKangHHee"},
		{slash, "mailto:a@b.c", "mailto:a@b.c"},
		{slash, "#top", "#top"},
		{bare, "/", "/site/"},
		{bare, "/resume/", "/site/resume"},
		{bare, "/404.html", "/site/404.html"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.site.Link(tt.in), tt.in)
	}
}

func TestAbsoluteURL(t *testing.T) {
	s := Site{URL: "https://example.github.io/", BaseURL: "/"}
	assert.Equal(t, "https://example.github.io/blog/x/", s.AbsoluteURL("/blog/x/"))
}

func TestCopyright(t *testing.T) {
	s := Site{Footer: Footer{Copyright: "Copyright © {year} Kang-hee."}}
	assert.Equal(t, "Copyright © 2026 Kang-hee.", s.Copyright(2026))
}

func TestIsExternal(t *testing.T) {
	assert.True(t, IsExternal("https://x.y"))
	assert.True(t, IsExternal("mailto:x@y"))
	assert.False(t, IsExternal("/blog/"))
	assert.False(t, IsExternal("a/b:c"))
	assert.False(t, IsExternal(":x"))
}
