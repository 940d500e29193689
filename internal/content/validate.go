package content

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// reservedPostSlugs are segments under /blog/ that belong to generated pages.
var reservedPostSlugs = map[string]bool{"page": true, "tags": true}

// validSlug reports whether s is safe as a single path segment.
func validSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

// ValidationError describes one missing or malformed content field.
type ValidationError struct {
	File  string
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

type problems []error

func (p *problems) add(file, field, msg string) {
	*p = append(*p, &ValidationError{File: file, Field: field, Msg: msg})
}

func (p *problems) require(file, field, value string) {
	if strings.TrimSpace(value) == "" {
		p.add(file, field, "is required")
	}
}

// Validate checks the basic shape of every record and reports all problems at once.
func (c *Content) Validate() error {
	var errs problems

	errs.require("site.yaml", "title", c.Site.Title)
	if !strings.HasPrefix(c.Site.BaseURL, "/") {
		errs.add("site.yaml", "baseUrl", "must start with /")
	}
	switch c.Site.OnBrokenLinks {
	case "throw", "warn", "ignore":
	default:
		errs.add("site.yaml", "onBrokenLinks", fmt.Sprintf("unknown policy %q", c.Site.OnBrokenLinks))
	}
	switch c.Site.ColorMode.DefaultMode {
	case "light", "dark":
	default:
		errs.add("site.yaml", "colorMode.defaultMode", fmt.Sprintf("unknown mode %q", c.Site.ColorMode.DefaultMode))
	}
	for i, item := range c.Site.Navbar.Items {
		field := fmt.Sprintf("navbar.items[%d]", i)
		errs.require("site.yaml", field+".label", item.Label)
		if (item.To == "") == (item.Href == "") {
			errs.add("site.yaml", field, "exactly one of to or href is required")
		}
	}
	for _, f := range c.Site.Blog.Feed {
		if f != "rss" && f != "atom" {
			errs.add("site.yaml", "blog.feed", fmt.Sprintf("unknown feed type %q", f))
		}
	}

	errs.require("resume.yaml", "name", c.Resume.Name)
	for i, p := range c.Resume.Projects {
		validateProject(&errs, fmt.Sprintf("projects[%d]", i), p)
	}

	seen := make(map[string]bool)
	for _, p := range c.Portfolios {
		file := "portfolio/" + p.Slug + ".yaml"
		errs.require(file, "title", p.Title)
		if !validSlug(p.Slug) {
			errs.add(file, "slug", fmt.Sprintf("%q must contain only letters, digits, - and _", p.Slug))
		}
		if seen[p.Slug] {
			errs.add(file, "slug", "duplicate slug")
		}
		seen[p.Slug] = true
		for i, t := range p.Troubles {
			errs.require(file, fmt.Sprintf("troubles[%d].title", i), t.Title)
		}
	}

	seen = make(map[string]bool)
	for _, p := range c.Posts {
		errs.require(p.File, "title", p.Title)
		if p.Date.IsZero() {
			errs.add(p.File, "date", "is required")
		}
		switch {
		case !validSlug(p.Slug):
			errs.add(p.File, "slug", fmt.Sprintf("%q must contain only letters, digits, - and _", p.Slug))
		case reservedPostSlugs[p.Slug]:
			errs.add(p.File, "slug", fmt.Sprintf("%q is reserved for generated pages", p.Slug))
		}
		if seen[p.Slug] {
			errs.add(p.File, "slug", "duplicate slug")
		}
		seen[p.Slug] = true
		for _, tag := range p.Tags {
			if TagSlug(tag) == "" {
				errs.add(p.File, "tags", fmt.Sprintf("tag %q has no letters or digits", tag))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func validateProject(errs *problems, field string, p Project) {
	const file = "resume.yaml"
	errs.require(file, field+".organization", p.Organization)
	errs.require(file, field+".title", p.Title)
	errs.require(file, field+".role", p.Role)
	errs.require(file, field+".period", p.Period)
	errs.require(file, field+".stack", p.Stack)
	errs.require(file, field+".members", p.Members)
	errs.require(file, field+".service", p.Service)
	for i, f := range p.Flows {
		ff := fmt.Sprintf("%s.flows[%d]", field, i)
		errs.require(file, ff+".problem", f.Problem)
		errs.require(file, ff+".solution", f.Solution)
		errs.require(file, ff+".result", f.Result)
	}
}
