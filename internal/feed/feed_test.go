package feed

import (
	"testing"
	"time"

	"github.com/KKangHHee/portfolio/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContent() *content.Content {
	return &content.Content{
		Site: content.Site{
			URL:     "https://KKangHHee.github.io",
			BaseURL: "/",
			Blog:    content.Blog{Title: "Troubleshooting & Learning", Description: "학습 기록"},
		},
		Resume: content.Resume{Name: "신강희"},
		Posts: []content.Post{
			{Slug: "newer", Title: "Newer", Description: "second", Date: time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)},
			{Slug: "older", Title: "Older", Date: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestBuild(t *testing.T) {
	f := Build(testContent())

	assert.Equal(t, "https://KKangHHee.github.io/blog/", f.Link.Href)
	require.Len(t, f.Items, 2)
	assert.Equal(t, "https://KKangHHee.github.io/blog/newer/", f.Items[0].Link.Href)
	assert.Equal(t, 2025, f.Updated.Year())
	assert.Equal(t, time.September, f.Updated.Month())
	assert.Equal(t, "신강희", f.Author.Name)
}

func TestRender(t *testing.T) {
	rss, err := Render(testContent(), "rss")
	require.NoError(t, err)
	assert.Contains(t, string(rss), "<rss")
	assert.Contains(t, string(rss), "https://KKangHHee.github.io/blog/older/")

	atom, err := Render(testContent(), "atom")
	require.NoError(t, err)
	assert.Contains(t, string(atom), "http://www.w3.org/2005/Atom")

	_, err = Render(testContent(), "json")
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Contains(t, ContentType("atom"), "atom")
	assert.Contains(t, ContentType("rss"), "rss")
}
