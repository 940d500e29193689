package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePostFromDatedFileName(t *testing.T) {
	raw := []byte("---\ntitle: Hello\ntags: [a, b]\n---\n\nIntro line.\n\n<!-- truncate -->\n\nRest of the post.\n")

	post, err := ParsePost("blog/2025-09-15-hello-world.md", raw)
	require.NoError(t, err)

	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), post.Date)
	assert.Equal(t, []string{"a", "b"}, post.Tags)
	assert.True(t, post.Truncated)
	assert.Equal(t, "Intro line.", post.Excerpt)
	assert.NotContains(t, post.Body, "truncate")
	assert.Contains(t, post.Body, "Rest of the post.")
}

func TestParsePostFrontMatterWins(t *testing.T) {
	raw := []byte("---\nslug: custom\ndate: 2024-01-02\ntitle: T\ndescription: D\n---\nBody\n")

	post, err := ParsePost("blog/2025-09-15-name.md", raw)
	require.NoError(t, err)

	assert.Equal(t, "custom", post.Slug)
	assert.Equal(t, 2024, post.Date.Year())
	assert.False(t, post.Truncated)
	assert.Equal(t, "D", post.Excerpt)
}

func TestParsePostWithoutFrontMatter(t *testing.T) {
	post, err := ParsePost("blog/plain.md", []byte("# Title\r\n\r\nText"))
	require.NoError(t, err)

	assert.Equal(t, "plain", post.Slug)
	assert.True(t, post.Date.IsZero())
	assert.Equal(t, "# Title\n\nText", post.Body)
}

func TestParsePostErrors(t *testing.T) {
	_, err := ParsePost("blog/x.md", []byte("---\ntitle: open\n"))
	assert.ErrorContains(t, err, "unterminated front matter")

	_, err = ParsePost("blog/y.md", []byte("---\nunknown: 1\n---\n"))
	assert.ErrorContains(t, err, "blog/y.md")
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, readingTime(""))
	assert.Equal(t, 1, readingTime("one two three"))
	assert.Equal(t, 2, readingTime(strings.Repeat("word ", 201)))
}

func TestTagSlug(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{" Spring Security ", "spring-security"},
		{"성능", "성능"},
		{"C#", "c-sharp"},
		{"C++", "c-plus-plus"},
		{"Node.js", "node-js"},
		{"CI/CD", "ci-cd"},
		{"100%?", "100"},
		{"a -- b", "a-b"},
		{"#", "sharp"},
		{"?!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, TagSlug(tt.tag))
		})
	}
}
