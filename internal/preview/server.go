// Package preview serves the site locally the way the static export lays
// it out, re-rendering on every request so content edits show up after a
// reload.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KKangHHee/portfolio/internal/content"
	"github.com/KKangHHee/portfolio/internal/feed"
	"github.com/KKangHHee/portfolio/internal/render"
	"github.com/KKangHHee/portfolio/internal/site"
)

const shutdownTimeout = 5 * time.Second

// state is everything derived from one content set.
type state struct {
	content  *content.Content
	renderer *render.Renderer
	pages    map[string]site.Page
}

type Server struct {
	templates fs.FS
	static    fs.FS
	log       *zap.Logger
	// base is the baseUrl without its trailing slash, fixed at New.
	base   string
	engine *gin.Engine

	mu    sync.RWMutex
	state *state
}

func New(c *content.Content, templates, static fs.FS, log *zap.Logger) (*Server, error) {
	s := &Server{
		templates: templates,
		static:    static,
		log:       log,
		base:      strings.TrimSuffix(c.Site.BaseURL, "/"),
	}
	if err := s.Reload(c); err != nil {
		return nil, err
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.log, s.base))

	r.GET("/healthz", func(c *gin.Context) {
		st := s.current()
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"pages":  len(st.pages),
			"posts":  len(st.content.Posts),
		})
	})

	feeds := r.Group(s.base+"/blog", cors.Default())
	for _, kind := range []string{"rss", "atom"} {
		feeds.GET("/"+kind+".xml", s.feedHandler(kind))
	}

	r.NoRoute(s.page)
	return r
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Reload re-parses templates against c and swaps the served state.
// On error the previous state keeps serving.
func (s *Server) Reload(c *content.Content) error {
	r, err := render.New(s.templates, c.Site)
	if err != nil {
		return fmt.Errorf("reload templates: %w", err)
	}
	pages := site.Pages(c)
	if err := site.CheckRoutes(pages); err != nil {
		return err
	}
	st := &state{content: c, renderer: r, pages: site.Index(pages)}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

func (s *Server) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Server) page(c *gin.Context) {
	st := s.current()
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		s.notFound(c, st)
		return
	}

	p, ok := strings.CutPrefix(c.Request.URL.Path, s.base)
	if !ok || (p != "" && !strings.HasPrefix(p, "/")) {
		s.notFound(c, st)
		return
	}
	if p == "" {
		p = "/"
	}

	if pg, ok := st.pages[p]; ok {
		s.render(c, st, pg, http.StatusOK)
		return
	}
	if alt := alternate(p); alt != "" {
		if _, ok := st.pages[alt]; ok {
			c.Redirect(http.StatusMovedPermanently, s.base+alt)
			return
		}
	}

	name := strings.TrimPrefix(p, "/")
	if info, err := fs.Stat(s.static, name); err == nil && !info.IsDir() {
		c.FileFromFS(name, http.FS(s.static))
		return
	}
	s.notFound(c, st)
}

func (s *Server) feedHandler(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := s.current()
		if !st.content.Site.Blog.HasFeed(kind) {
			s.notFound(c, st)
			return
		}
		data, err := feed.Render(st.content, kind)
		if err != nil {
			s.log.Error("render feed", zap.String("kind", kind), zap.Error(err))
			c.String(http.StatusInternalServerError, "feed error")
			return
		}
		c.Data(http.StatusOK, feed.ContentType(kind), data)
	}
}

func (s *Server) notFound(c *gin.Context, st *state) {
	pg, ok := st.pages[site.NotFoundPath]
	if !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	s.render(c, st, pg, http.StatusNotFound)
}

func (s *Server) render(c *gin.Context, st *state, pg site.Page, status int) {
	var buf bytes.Buffer
	if err := st.renderer.Render(&buf, pg.Template, pg.Data(st.content.Site)); err != nil {
		s.log.Error("render page", zap.String("path", pg.Path), zap.Error(err))
		c.String(http.StatusInternalServerError, "render error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// alternate returns the other slash form of a route, if it has one.
func alternate(p string) string {
	switch {
	case p == "/":
		return ""
	case strings.HasSuffix(p, "/"):
		return strings.TrimSuffix(p, "/")
	case path.Ext(p) == "":
		return p + "/"
	default:
		return ""
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down preview server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
