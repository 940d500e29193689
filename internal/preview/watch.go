package preview

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/KKangHHee/portfolio/internal/content"
)

const DefaultDebounce = 200 * time.Millisecond

// Watch calls onChange once a burst of changes under dir settles for
// debounce. Directories created later are watched too. It blocks until ctx
// is done.
func Watch(ctx context.Context, dir string, debounce time.Duration, log *zap.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := addTree(w, dir); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(w, ev.Name); err != nil {
						log.Warn("watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			log.Debug("content changed", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", zap.Error(err))

		case <-timer.C:
			onChange()
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// WatchContent reloads the server from dir whenever its files change.
// Invalid content is logged and the last good state keeps serving.
func (s *Server) WatchContent(ctx context.Context, dir string) error {
	s.log.Info("watching content", zap.String("dir", dir))
	return Watch(ctx, dir, DefaultDebounce, s.log, func() {
		c, err := content.Load(os.DirFS(dir))
		if err != nil {
			s.log.Error("reload content", zap.Error(err))
			return
		}
		if err := s.Reload(c); err != nil {
			s.log.Error("reload templates", zap.Error(err))
			return
		}
		s.log.Info("content reloaded", zap.Int("posts", len(c.Posts)), zap.Int("portfolios", len(c.Portfolios)))
	})
}
