// Package linkcheck finds internal links in rendered pages that point
// nowhere.
package linkcheck

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

var ErrBrokenLinks = errors.New("linkcheck: broken links")

type Policy string

const (
	Throw  Policy = "throw"
	Warn   Policy = "warn"
	Ignore Policy = "ignore"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case Throw, Warn, Ignore:
		return p, nil
	}
	return "", fmt.Errorf("unknown broken link policy %q", s)
}

// Broken is an unresolved link found on a page.
type Broken struct {
	Page string
	Link string
}

func (b Broken) String() string {
	return fmt.Sprintf("%s -> %s", b.Page, b.Link)
}

// Checker resolves links against a fixed set of known URL paths.
type Checker struct {
	known map[string]struct{}
}

// New builds a checker over the public URL paths of pages and files.
func New(paths []string) *Checker {
	c := &Checker{known: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		c.known[p] = struct{}{}
	}
	return c
}

// Check parses the HTML served at pagePath and returns its broken links.
func (c *Checker) Check(pagePath string, r io.Reader) ([]Broken, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pagePath, err)
	}

	var broken []Broken
	seen := make(map[string]bool)
	for _, href := range hrefs(doc) {
		target, ok := resolve(pagePath, href)
		if !ok || seen[href] {
			continue
		}
		seen[href] = true
		if !c.exists(target) {
			broken = append(broken, Broken{Page: pagePath, Link: href})
		}
	}
	return broken, nil
}

func (c *Checker) exists(p string) bool {
	if _, ok := c.known[p]; ok {
		return true
	}
	if strings.HasSuffix(p, "/") {
		_, ok := c.known[p+"index.html"]
		return ok
	}
	return false
}

// Report turns the findings into an error under the throw policy.
func Report(policy Policy, broken []Broken) error {
	if policy != Throw || len(broken) == 0 {
		return nil
	}
	sort.Slice(broken, func(i, j int) bool {
		if broken[i].Page != broken[j].Page {
			return broken[i].Page < broken[j].Page
		}
		return broken[i].Link < broken[j].Link
	})

	lines := make([]string, len(broken))
	for i, b := range broken {
		lines[i] = "  " + b.String()
	}
	return fmt.Errorf("%w (%d):\n%s", ErrBrokenLinks, len(broken), strings.Join(lines, "\n"))
}

func hrefs(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					out = append(out, a.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

// resolve returns the URL path an internal href points to. External links,
// mailto/tel links and pure fragments report false.
func resolve(pagePath, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if u.Path == "" {
		return "", false
	}

	p := u.Path
	if !strings.HasPrefix(p, "/") {
		dir := pagePath
		if !strings.HasSuffix(dir, "/") {
			dir = path.Dir(dir) + "/"
		}
		p = dir + p
	}
	cleaned := path.Clean(p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned, true
}
