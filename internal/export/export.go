// Package export writes the site as static files: pages, feeds and assets.
package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KKangHHee/portfolio/internal/content"
	"github.com/KKangHHee/portfolio/internal/feed"
	"github.com/KKangHHee/portfolio/internal/linkcheck"
	"github.com/KKangHHee/portfolio/internal/manifest"
	"github.com/KKangHHee/portfolio/internal/render"
	"github.com/KKangHHee/portfolio/internal/site"
)

type Options struct {
	OutDir string
	// ManifestPath enables incremental builds when set.
	ManifestPath string
	Concurrency  int
	BrokenLinks  linkcheck.Policy
}

type Result struct {
	Written   int
	Unchanged int
	Removed   int
	Broken    []linkcheck.Broken
}

type Builder struct {
	content  *content.Content
	renderer *render.Renderer
	static   fs.FS
	log      *zap.Logger
	opts     Options
}

func New(c *content.Content, r *render.Renderer, static fs.FS, log *zap.Logger, opts Options) *Builder {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.BrokenLinks == "" {
		opts.BrokenLinks = linkcheck.Policy(c.Site.OnBrokenLinks)
	}
	return &Builder{content: c, renderer: r, static: static, log: log, opts: opts}
}

// output is one file of the export, keyed by its slash path relative to OutDir.
type output struct {
	file  string
	route string
	html  bool
	data  []byte
}

// Build renders everything, checks links and writes the changed files.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	outputs, err := b.collect(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if b.opts.BrokenLinks != linkcheck.Ignore {
		broken, err := b.checkLinks(outputs)
		if err != nil {
			return nil, err
		}
		res.Broken = broken
		for _, br := range broken {
			b.log.Warn("broken link", zap.String("page", br.Page), zap.String("link", br.Link))
		}
		if err := linkcheck.Report(b.opts.BrokenLinks, broken); err != nil {
			return res, err
		}
	}

	var m *manifest.Manifest
	if b.opts.ManifestPath != "" {
		m, err = manifest.Open(ctx, b.opts.ManifestPath)
		if err != nil {
			return nil, err
		}
		defer m.Close()
	}

	if err := b.write(ctx, m, outputs, res); err != nil {
		return res, err
	}
	if err := b.prune(ctx, m, outputs, res); err != nil {
		return res, err
	}

	b.log.Info("export finished",
		zap.String("out", b.opts.OutDir),
		zap.Int("written", res.Written),
		zap.Int("unchanged", res.Unchanged),
		zap.Int("removed", res.Removed),
		zap.Int("broken_links", len(res.Broken)),
	)
	return res, nil
}

func (b *Builder) collect(ctx context.Context) ([]output, error) {
	pages := site.Pages(b.content)
	if err := site.CheckRoutes(pages); err != nil {
		return nil, err
	}
	outputs := make([]output, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)
	for i, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := b.renderer.Render(&buf, p.Template, p.Data(b.content.Site)); err != nil {
				return fmt.Errorf("page %s: %w", p.Path, err)
			}
			outputs[i] = output{file: OutputFile(p.Path), route: p.Path, html: true, data: buf.Bytes()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, f := range site.Feeds(b.content.Site) {
		data, err := feed.Render(b.content, f.Kind)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output{file: OutputFile(f.Path), route: f.Path, data: data})
	}

	assets, err := b.assets()
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, assets...)

	// Routes are unique, but two routes can still map to one file.
	claimed := make(map[string]string, len(outputs))
	for _, o := range outputs {
		if prev, ok := claimed[o.file]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", site.ErrDuplicateRoute, prev, o.route, o.file)
		}
		claimed[o.file] = o.route
	}
	return outputs, nil
}

func (b *Builder) assets() ([]output, error) {
	if b.static == nil {
		return nil, nil
	}
	var outputs []output
	err := fs.WalkDir(b.static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(b.static, p)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", p, err)
		}
		outputs = append(outputs, output{file: p, route: "/" + p, data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk static assets: %w", err)
	}
	return outputs, nil
}

func (b *Builder) checkLinks(outputs []output) ([]linkcheck.Broken, error) {
	s := b.content.Site
	known := make([]string, 0, len(outputs))
	for _, o := range outputs {
		known = append(known, s.Link(o.route))
	}
	checker := linkcheck.New(known)

	var broken []linkcheck.Broken
	for _, o := range outputs {
		if !o.html {
			continue
		}
		found, err := checker.Check(s.Link(o.route), bytes.NewReader(o.data))
		if err != nil {
			return nil, err
		}
		broken = append(broken, found...)
	}
	return broken, nil
}

func (b *Builder) write(ctx context.Context, m *manifest.Manifest, outputs []output, res *Result) error {
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)

	for _, o := range outputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			wrote, err := b.writeOne(ctx, m, o)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if wrote {
				res.Written++
			} else {
				res.Unchanged++
			}
			return nil
		})
	}
	return g.Wait()
}

func (b *Builder) writeOne(ctx context.Context, m *manifest.Manifest, o output) (bool, error) {
	sum := sha256.Sum256(o.data)
	hash := hex.EncodeToString(sum[:])
	target := filepath.Join(b.opts.OutDir, filepath.FromSlash(o.file))

	if unchanged, err := b.unchanged(ctx, m, o.file, target, hash); err != nil {
		return false, err
	} else if unchanged {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("create dir for %s: %w", o.file, err)
	}
	if err := os.WriteFile(target, o.data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", o.file, err)
	}
	if m != nil {
		if err := m.Record(ctx, o.file, hash, int64(len(o.data))); err != nil {
			return false, err
		}
	}
	return true, nil
}

// unchanged compares against the manifest when present, else the file on disk.
func (b *Builder) unchanged(ctx context.Context, m *manifest.Manifest, file, target, hash string) (bool, error) {
	existing, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", file, err)
	}
	if m != nil {
		same, err := m.Unchanged(ctx, file, hash)
		if err != nil || !same {
			return false, err
		}
	}
	sum := sha256.Sum256(existing)
	return hex.EncodeToString(sum[:]) == hash, nil
}

// prune deletes files the manifest knows from earlier builds that this build
// no longer produces.
func (b *Builder) prune(ctx context.Context, m *manifest.Manifest, outputs []output, res *Result) error {
	if m == nil {
		return nil
	}
	current := make(map[string]bool, len(outputs))
	for _, o := range outputs {
		current[o.file] = true
	}

	entries, err := m.Entries(ctx)
	if err != nil {
		return err
	}
	var stale []string
	for _, e := range entries {
		if !current[e.Path] {
			stale = append(stale, e.Path)
		}
	}
	sort.Strings(stale)

	for _, file := range stale {
		target := filepath.Join(b.opts.OutDir, filepath.FromSlash(file))
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", file, err)
		}
		b.log.Debug("removed stale output", zap.String("file", file))
	}
	n, err := m.Remove(ctx, stale...)
	res.Removed = int(n)
	return err
}

// OutputFile maps a route to its file under the export directory.
func OutputFile(route string) string {
	switch {
	case route == "" || route == "/":
		return "index.html"
	case strings.HasSuffix(route, "/"):
		return strings.TrimPrefix(route, "/") + "index.html"
	case path.Ext(route) != "":
		return strings.TrimPrefix(route, "/")
	default:
		return strings.TrimPrefix(route, "/") + ".html"
	}
}
