// Package content loads and validates the site's hand-authored content:
// site settings, the home page, the résumé with its project records,
// portfolio write-ups and blog posts.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalid  = errors.New("content: invalid")
	ErrNotFound = errors.New("content: not found")
)

//go:embed data
var embedded embed.FS

// Embedded returns the content set compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load reads every content file from fsys and validates the result.
func Load(fsys fs.FS) (*Content, error) {
	c := &Content{}

	if err := decodeYAML(fsys, "site.yaml", &c.Site); err != nil {
		return nil, err
	}
	c.Site.applyDefaults()

	if err := decodeYAML(fsys, "home.yaml", &c.Home); err != nil {
		return nil, err
	}
	if err := decodeYAML(fsys, "resume.yaml", &c.Resume); err != nil {
		return nil, err
	}

	portfolios, err := loadPortfolios(fsys)
	if err != nil {
		return nil, err
	}
	c.Portfolios = portfolios

	posts, err := loadPosts(fsys)
	if err != nil {
		return nil, err
	}
	c.Posts = posts

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeYAML(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func loadPortfolios(fsys fs.FS) ([]Portfolio, error) {
	names, err := glob(fsys, "portfolio", ".yaml")
	if err != nil {
		return nil, err
	}

	portfolios := make([]Portfolio, 0, len(names))
	for _, name := range names {
		var p Portfolio
		if err := decodeYAML(fsys, name, &p); err != nil {
			return nil, err
		}
		if p.Slug == "" {
			p.Slug = strings.TrimSuffix(path.Base(name), ".yaml")
		}
		portfolios = append(portfolios, p)
	}

	sort.SliceStable(portfolios, func(i, j int) bool {
		if portfolios[i].Order != portfolios[j].Order {
			return portfolios[i].Order < portfolios[j].Order
		}
		return portfolios[i].Slug < portfolios[j].Slug
	})
	return portfolios, nil
}

func loadPosts(fsys fs.FS) ([]Post, error) {
	names, err := glob(fsys, "blog", ".md")
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		post, err := ParsePost(name, raw)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	sortPosts(posts)
	return posts, nil
}

// glob lists files in dir with the extension; a missing dir is empty.
func glob(fsys fs.FS, dir, ext string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ext {
			continue
		}
		names = append(names, path.Join(dir, e.Name()))
	}
	return names, nil
}
