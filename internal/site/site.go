// Package site assembles the route table shared by the static export and
// the preview server.
package site

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KKangHHee/portfolio/internal/content"
	"github.com/KKangHHee/portfolio/internal/render"
)

const NotFoundPath = "/404.html"

var ErrDuplicateRoute = errors.New("site: duplicate route")

// Page is one rendered route of the site.
type Page struct {
	Path        string
	Template    string
	Title       string
	Description string
	Body        any
}

func (p Page) Data(s content.Site) render.PageData {
	return render.PageData{
		Site:        s,
		Path:        p.Path,
		Title:       p.Title,
		Description: p.Description,
		Body:        p.Body,
	}
}

type Pagination struct {
	Prev string
	Next string
}

type PostSummary struct {
	Post            content.Post
	ShowReadingTime bool
}

type BlogList struct {
	Heading     string
	Description string
	Tag         string
	Posts       []PostSummary
	Pagination  Pagination
}

type PostView struct {
	Post            content.Post
	ShowReadingTime bool
	Pagination      Pagination
}

// Feed is a generated feed document.
type Feed struct {
	Path string
	Kind string
}

// Pages returns every page of the site in a stable order.
func Pages(c *content.Content) []Page {
	s := c.Site
	pages := []Page{
		{Path: s.Route("/"), Template: "home", Title: "Home", Description: c.Home.Description, Body: c.Home},
		{Path: s.Route("/resume/"), Template: "resume", Title: "Resume", Body: c.Resume},
		{Path: s.Route("/portfolio/"), Template: "portfolio_index", Title: "Projects", Body: c.Portfolios},
	}

	for _, p := range c.Portfolios {
		pages = append(pages, Page{
			Path:        s.Route("/portfolio/" + p.Slug + "/"),
			Template:    "portfolio",
			Title:       p.Title,
			Description: p.Subtitle,
			Body:        p,
		})
	}

	pages = append(pages, blogIndexPages(c)...)
	pages = append(pages, postPages(c)...)
	pages = append(pages, tagPages(c)...)
	pages = append(pages, Page{Path: NotFoundPath, Template: "404", Title: "Page Not Found"})
	return pages
}

// Index maps every page path to its page.
func Index(pages []Page) map[string]Page {
	idx := make(map[string]Page, len(pages))
	for _, p := range pages {
		idx[p.Path] = p
	}
	return idx
}

// CheckRoutes fails when two pages claim the same route.
func CheckRoutes(pages []Page) error {
	owner := make(map[string]Page, len(pages))
	var dups []string
	for _, p := range pages {
		if prev, ok := owner[p.Path]; ok {
			dups = append(dups, fmt.Sprintf("%s (%s, %s)", p.Path, prev.Template, p.Template))
			continue
		}
		owner[p.Path] = p
	}
	if len(dups) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, strings.Join(dups, ", "))
	}
	return nil
}

// Feeds lists the enabled feed documents.
func Feeds(s content.Site) []Feed {
	var feeds []Feed
	for _, kind := range []string{"rss", "atom"} {
		if s.Blog.HasFeed(kind) {
			feeds = append(feeds, Feed{Path: "/blog/" + kind + ".xml", Kind: kind})
		}
	}
	return feeds
}

func summaries(c *content.Content, posts []content.Post) []PostSummary {
	out := make([]PostSummary, len(posts))
	for i, p := range posts {
		out[i] = PostSummary{Post: p, ShowReadingTime: c.Site.Blog.ShowReadingTime}
	}
	return out
}

func blogPagePath(s content.Site, n int) string {
	if n == 1 {
		return s.Route("/blog/")
	}
	return s.Route(fmt.Sprintf("/blog/page/%d/", n))
}

func blogIndexPages(c *content.Content) []Page {
	s := c.Site
	per := max(s.Blog.PostsPerPage, 1)
	total := (len(c.Posts) + per - 1) / per
	if total == 0 {
		total = 1
	}

	pages := make([]Page, 0, total)
	for n := 1; n <= total; n++ {
		lo := (n - 1) * per
		hi := min(lo+per, len(c.Posts))

		var pg Pagination
		if n > 1 {
			pg.Prev = blogPagePath(s, n-1)
		}
		if n < total {
			pg.Next = blogPagePath(s, n+1)
		}

		title := s.Blog.Title
		if n > 1 {
			title = fmt.Sprintf("%s - Page %d", s.Blog.Title, n)
		}
		pages = append(pages, Page{
			Path:        blogPagePath(s, n),
			Template:    "blog_index",
			Title:       title,
			Description: s.Blog.Description,
			Body: BlogList{
				Heading:     s.Blog.Title,
				Description: s.Blog.Description,
				Posts:       summaries(c, c.Posts[lo:hi]),
				Pagination:  pg,
			},
		})
	}
	return pages
}

func postPages(c *content.Content) []Page {
	s := c.Site
	pages := make([]Page, 0, len(c.Posts))
	for i, p := range c.Posts {
		var pg Pagination
		if i > 0 {
			pg.Prev = s.Route("/blog/" + c.Posts[i-1].Slug + "/")
		}
		if i < len(c.Posts)-1 {
			pg.Next = s.Route("/blog/" + c.Posts[i+1].Slug + "/")
		}
		pages = append(pages, Page{
			Path:        s.Route("/blog/" + p.Slug + "/"),
			Template:    "blog_post",
			Title:       p.Title,
			Description: p.Description,
			Body:        PostView{Post: p, ShowReadingTime: s.Blog.ShowReadingTime, Pagination: pg},
		})
	}
	return pages
}

func tagPages(c *content.Content) []Page {
	s := c.Site
	tags := c.Tags()
	if len(tags) == 0 {
		return nil
	}

	pages := []Page{{Path: s.Route("/blog/tags/"), Template: "blog_tags", Title: "Tags", Body: tags}}
	for _, tag := range tags {
		heading := fmt.Sprintf("%d post", tag.Count)
		if tag.Count != 1 {
			heading += "s"
		}
		heading += fmt.Sprintf(" tagged with %q", tag.Name)

		pages = append(pages, Page{
			Path:     s.Route("/blog/tags/" + tag.Slug + "/"),
			Template: "blog_index",
			Title:    heading,
			Body: BlogList{
				Heading: heading,
				Tag:     tag.Slug,
				Posts:   summaries(c, c.PostsByTag(tag.Slug)),
			},
		})
	}
	return pages
}
