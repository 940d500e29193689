// Package feed builds the blog's RSS and Atom documents.
package feed

import (
	"fmt"
	"time"

	"github.com/KKangHHee/portfolio/internal/content"
	"github.com/gorilla/feeds"
)

// Build assembles the feed model for all posts, newest first.
func Build(c *content.Content) *feeds.Feed {
	s := c.Site
	f := &feeds.Feed{
		Title:       s.Blog.Title,
		Link:        &feeds.Link{Href: s.AbsoluteURL("/blog/")},
		Description: s.Blog.Description,
		Copyright:   s.Copyright(time.Now().Year()),
	}
	if c.Resume.Name != "" {
		f.Author = &feeds.Author{Name: c.Resume.Name}
	}

	for _, p := range c.Posts {
		link := s.AbsoluteURL("/blog/" + p.Slug + "/")
		f.Items = append(f.Items, &feeds.Item{
			Id:          link,
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Description,
			Created:     p.Date,
		})
	}
	if len(c.Posts) > 0 {
		f.Created = c.Posts[0].Date
		f.Updated = c.Posts[0].Date
	}
	return f
}

// Render encodes the feed in the given format (rss or atom).
func Render(c *content.Content, kind string) ([]byte, error) {
	f := Build(c)

	var (
		out string
		err error
	)
	switch kind {
	case "rss":
		out, err = f.ToRss()
	case "atom":
		out, err = f.ToAtom()
	default:
		return nil, fmt.Errorf("unknown feed type %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s feed: %w", kind, err)
	}
	return []byte(out), nil
}

// ContentType returns the MIME type of the feed format.
func ContentType(kind string) string {
	if kind == "atom" {
		return "application/atom+xml; charset=utf-8"
	}
	return "application/rss+xml; charset=utf-8"
}
