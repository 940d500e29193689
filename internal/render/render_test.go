package render

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/KKangHHee/portfolio/internal/content"
	"github.com/KKangHHee/portfolio/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func newRenderer(t *testing.T) (*Renderer, *content.Content) {
	t.Helper()
	c, err := content.Load(content.Embedded())
	require.NoError(t, err)

	r, err := New(web.Templates(), c.Site, WithClock(fixedClock))
	require.NoError(t, err)
	return r, c
}

func render(t *testing.T, r *Renderer, c *content.Content, name string, body any) string {
	t.Helper()
	var buf bytes.Buffer
	err := r.Render(&buf, name, PageData{Site: c.Site, Path: "/" + name + "/", Title: name, Body: body})
	require.NoError(t, err)
	return buf.String()
}

func TestTemplates(t *testing.T) {
	r, _ := newRenderer(t)
	assert.Equal(t, []string{
		"404", "blog_index", "blog_post", "blog_tags", "home", "portfolio", "portfolio_index", "resume",
	}, r.Templates())
}

func TestRenderHome(t *testing.T) {
	r, c := newRenderer(t)
	html := render(t, r, c, "home", c.Home)

	assert.Contains(t, html, `<html lang="ko" data-theme="light">`)
	assert.Contains(t, html, "백엔드 엔지니어")
	assert.Contains(t, html, "Core Skills")
	assert.Contains(t, html, `href="/portfolio/ready-berry/"`)
	assert.Contains(t, html, "Copyright © 2026 Kang-hee.")
	assert.Contains(t, html, `href="/blog/rss.xml"`)
}

func TestRenderResumeProjectItems(t *testing.T) {
	r, c := newRenderer(t)
	html := render(t, r, c, "resume", c.Resume)

	assert.Contains(t, html, "[팀 프로젝트]</span> Bargain Hunter (Full Stack)")
	assert.Contains(t, html, "2025.07 ~ 2025.10 (4개월) | 4인")
	assert.Contains(t, html, `<div class="tag"><span class="tag__label">Spring Cloud Gateway</span></div>`)
	assert.Contains(t, html, `<span class="project__domain">이메일 인증 API</span>`)
	assert.Contains(t, html, `<span class="tag__label">MyBatis</span>`)
	assert.Contains(t, html, `src="/img/resume/java.svg"`)

	// Three projects, but only two carry flows.
	assert.Equal(t, 3, strings.Count(html, `<div class="project">`))
	assert.Equal(t, 2, strings.Count(html, `<ol class="project__flows">`))
	assert.Equal(t, 3, strings.Count(html, `<ul class="project__extras">`))
}

func TestRenderPortfolio(t *testing.T) {
	r, c := newRenderer(t)
	p, err := c.Portfolio("security-ticket")
	require.NoError(t, err)

	html := render(t, r, c, "portfolio", p)

	assert.Contains(t, html, `<h1 class="portfolio__title">Security Ticket</h1>`)
	assert.Contains(t, html, "<code>MyBatis</code>")
	assert.Contains(t, html, "<strong>OR 조건 통합을 통한 쿼리 재사용성 향상</strong>")
	assert.Contains(t, html, `<td class="down">36.8% ↓</td>`)
	assert.Contains(t, html, `<td class="up">23% ↑</td>`)
	assert.Contains(t, html, `href="/blog/jpa-mybatis-hybrid-strategy/"`)
	assert.NotContains(t, html, "성과 및 배운 점")
}

func TestRenderPortfolioRetrospective(t *testing.T) {
	r, c := newRenderer(t)
	p, err := c.Portfolio("ready-berry")
	require.NoError(t, err)

	html := render(t, r, c, "portfolio", p)
	assert.Contains(t, html, "성과 및 배운 점 – ReadyBerry에서 얻은 것")
	assert.Contains(t, html, "<strong>전체 흐름을 보는 개발</strong>")
	assert.Contains(t, html, "├── components/")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, c := newRenderer(t)
	var buf bytes.Buffer
	err := r.Render(&buf, "missing", PageData{Site: c.Site})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	assert.Zero(t, buf.Len())
}

func TestRenderDoesNotWritePartialOutput(t *testing.T) {
	fsys := fstest.MapFS{
		"base.html":           {Data: []byte(`{{define "base"}}<p>start</p>{{block "main" .}}{{end}}{{end}}`)},
		"partials/empty.html": {Data: []byte(`{{define "empty"}}{{end}}`)},
		"pages/bad.html":      {Data: []byte(`{{define "main"}}{{.Body.Missing}}{{end}}`)},
	}
	r, err := New(fsys, content.Site{Title: "T"})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "bad", PageData{Body: struct{}{}})
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestBaseURLIsApplied(t *testing.T) {
	c, err := content.Load(content.Embedded())
	require.NoError(t, err)
	no := false
	c.Site.BaseURL = "/portfolio-site/"
	c.Site.TrailingSlash = &no

	r, err := New(web.Templates(), c.Site, WithClock(fixedClock))
	require.NoError(t, err)

	html := render(t, r, c, "home", c.Home)
	assert.Contains(t, html, `href="/portfolio-site/resume"`)
	assert.Contains(t, html, `href="/portfolio-site/css/site.css"`)
}
