package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KKangHHee/portfolio/internal/export"
	"github.com/KKangHHee/portfolio/internal/linkcheck"
	"github.com/KKangHHee/portfolio/internal/preview"
	"github.com/KKangHHee/portfolio/internal/render"
	"github.com/KKangHHee/portfolio/internal/terminal"
	"github.com/KKangHHee/portfolio/web"
)

func buildCmd(a *app) *cobra.Command {
	var (
		outDir       string
		manifestPath string
		concurrency  int
		brokenLinks  string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := export.Options{
				OutDir:       a.cfg.Build.OutDir,
				ManifestPath: a.cfg.Build.ManifestPath,
				Concurrency:  a.cfg.Build.Concurrency,
			}
			flags := cmd.Flags()
			if flags.Changed("out") {
				opts.OutDir = outDir
			}
			if flags.Changed("manifest") {
				opts.ManifestPath = manifestPath
			}
			if flags.Changed("concurrency") {
				opts.Concurrency = concurrency
			}

			policy := a.cfg.Build.BrokenLinks
			if flags.Changed("on-broken-links") {
				policy = brokenLinks
			}
			if policy != "" {
				p, err := linkcheck.ParsePolicy(policy)
				if err != nil {
					return err
				}
				opts.BrokenLinks = p
			}

			c, err := a.loadContent()
			if err != nil {
				return err
			}
			r, err := render.New(web.Templates(), c.Site)
			if err != nil {
				return err
			}

			res, err := export.New(c, r, web.Static(), a.log, opts).Build(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "built %s: %d written, %d unchanged, %d removed\n",
				opts.OutDir, res.Written, res.Unchanged, res.Removed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default OUT_DIR)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "build manifest path, empty disables incremental builds (default BUILD_MANIFEST)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "parallel renders and writes (default BUILD_CONCURRENCY)")
	cmd.Flags().StringVar(&brokenLinks, "on-broken-links", "", "throw, warn or ignore (default from site.yaml)")
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the site locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Server.GinMode != "" {
				gin.SetMode(a.cfg.Server.GinMode)
			}
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Server.Port
			}

			c, err := a.loadContent()
			if err != nil {
				return err
			}
			srv, err := preview.New(c, web.Templates(), web.Static(), a.log)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if dir := a.cfg.Content.Dir; dir != "" {
				go func() {
					if err := srv.WatchContent(ctx, dir); err != nil {
						a.log.Error("content watcher stopped", zap.Error(err))
					}
				}()
			}
			return srv.Run(ctx, ":"+port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default PORT)")
	return cmd
}

func resumeCmd(a *app) *cobra.Command {
	var (
		style string
		width int
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Print the résumé in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadContent()
			if err != nil {
				return err
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), terminal.Markdown(c.Resume))
				return err
			}
			out, err := terminal.Render(c.Resume, style, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&style, "style", "auto", "glamour style: auto, dark, light or notty")
	cmd.Flags().IntVarP(&width, "width", "w", 80, "word wrap width")
	cmd.Flags().BoolVar(&raw, "markdown", false, "print the Markdown source instead of styled output")
	return cmd
}
