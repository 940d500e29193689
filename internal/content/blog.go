package content

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

const (
	truncateMarker = "<!-- truncate -->"
	wordsPerMinute = 200
)

var datedName = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// ParsePost parses a Markdown file with optional YAML front matter.
// Slug and date fall back to the file name (YYYY-MM-DD-slug.md).
func ParsePost(name string, raw []byte) (Post, error) {
	var post Post
	front, body, err := splitFrontMatter(raw)
	if err != nil {
		return post, fmt.Errorf("%s: %w", name, err)
	}
	if len(bytes.TrimSpace(front)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(front))
		dec.KnownFields(true)
		if err := dec.Decode(&post); err != nil {
			return post, fmt.Errorf("%s: front matter: %w", name, err)
		}
	}

	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if m := datedName.FindStringSubmatch(base); m != nil {
		if post.Date.IsZero() {
			d, err := time.Parse("2006-01-02", m[1])
			if err != nil {
				return post, fmt.Errorf("%s: date in file name: %w", name, err)
			}
			post.Date = d
		}
		base = m[2]
	}
	if post.Slug == "" {
		post.Slug = base
	}

	post.File = name
	post.Body = strings.TrimSpace(string(body))
	if i := strings.Index(post.Body, truncateMarker); i >= 0 {
		post.Excerpt = strings.TrimSpace(post.Body[:i])
		post.Body = strings.TrimSpace(post.Body[:i] + "\n\n" + post.Body[i+len(truncateMarker):])
		post.Truncated = true
	} else {
		post.Excerpt = post.Description
	}
	post.ReadingTime = readingTime(post.Body)
	return post, nil
}

func splitFrontMatter(raw []byte) (front, body []byte, err error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	normalized := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, normalized, nil
	}
	rest := normalized[len("---\n"):]
	if bytes.HasPrefix(rest, []byte("---")) {
		return nil, bytes.TrimPrefix(rest[len("---"):], []byte("\n")), nil
	}
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter")
	}
	front = rest[:end]
	body = rest[end+len("\n---"):]
	body = bytes.TrimPrefix(body, []byte("\n"))
	return front, body, nil
}

func readingTime(body string) int {
	words := len(strings.FieldsFunc(body, unicode.IsSpace))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

var tagSymbols = strings.NewReplacer("#", " sharp ", "+", " plus ")

// TagSlug turns a tag name into its URL segment. Letters and digits are
// kept; any other run of characters becomes a single dash, so the slug is
// safe as one path segment.
func TagSlug(tag string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(tagSymbols.Replace(tag)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}

func sortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// Tags returns every tag with its post count, ordered by name.
func (c *Content) Tags() []TagCount {
	counts := make(map[string]*TagCount)
	for _, p := range c.Posts {
		for _, t := range p.Tags {
			slug := TagSlug(t)
			if tc, ok := counts[slug]; ok {
				tc.Count++
				continue
			}
			counts[slug] = &TagCount{Name: t, Slug: slug, Count: 1}
		}
	}
	tags := make([]TagCount, 0, len(counts))
	for _, tc := range counts {
		tags = append(tags, *tc)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Slug < tags[j].Slug })
	return tags
}

// PostsByTag returns the posts carrying the tag slug, newest first.
func (c *Content) PostsByTag(slug string) []Post {
	var posts []Post
	for _, p := range c.Posts {
		for _, t := range p.Tags {
			if TagSlug(t) == slug {
				posts = append(posts, p)
				break
			}
		}
	}
	return posts
}

func (c *Content) Post(slug string) (Post, error) {
	for _, p := range c.Posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("post %q: %w", slug, ErrNotFound)
}

func (c *Content) Portfolio(slug string) (Portfolio, error) {
	for _, p := range c.Portfolios {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Portfolio{}, fmt.Errorf("portfolio %q: %w", slug, ErrNotFound)
}
