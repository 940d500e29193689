package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KKangHHee/portfolio/internal/config"
	"github.com/KKangHHee/portfolio/internal/content"
	"github.com/KKangHHee/portfolio/internal/logging"
)

// app carries what every command needs once config is loaded.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Build and preview the portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.AddCommand(buildCmd(a), serveCmd(a), resumeCmd(a))
	return root
}

// loadContent reads CONTENT_DIR when set, else the embedded content.
func (a *app) loadContent() (*content.Content, error) {
	fsys := content.Embedded()
	if dir := a.cfg.Content.Dir; dir != "" {
		fsys = os.DirFS(dir)
	}
	c, err := content.Load(fsys)
	if err != nil {
		return nil, err
	}
	a.log.Debug("content loaded",
		zap.String("dir", a.cfg.Content.Dir),
		zap.Int("portfolios", len(c.Portfolios)),
		zap.Int("posts", len(c.Posts)),
	)
	return c, nil
}
