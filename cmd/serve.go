package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inovacc/roundboard/internal/web"
)

var (
	servePort  int
	serveHost  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the site locally",
	Long: `Serve the site straight from the store, laid out like an export:
index.html, <category>.html and <category>/<slug>.html. A JSON API is
available under /api/results and /api/posts.

With --watch the watcher runs in the same process, so the preview follows
the published files.`,
	Example: `  roundboard serve
  roundboard serve --port 9000 --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := openApp()
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()

		srv := web.New(web.Config{Host: serveHost, Port: servePort}, app.Results, app.Posts, app.Renderer, app.Clock)

		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			return srv.Start(ctx)
		})

		if serveWatch {
			w, err := app.Watcher()
			if err != nil {
				return err
			}

			g.Go(func() error {
				w.Run(ctx)
				return nil
			})
		}

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := web.DefaultConfig()
	serveCmd.Flags().IntVarP(&servePort, "port", "p", defaults.Port, "Port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", defaults.Host, "Address to bind")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Run the watcher alongside the server")
}
