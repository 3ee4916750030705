package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"atelier/app/watch"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(c *cli) *cobra.Command {
	var watchContent bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Serve the site on the configured address. Posts, products and social links
are read from disk on every request, so edits show up without a restart.
With --watch, changes to the blog directory are logged as they happen along
with any slug collisions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a := newApp(c.cfg)
			if err := a.openLedger(); err != nil {
				return err
			}
			defer a.Close()

			reportContent(a)
			if watchContent {
				w := watch.New(c.cfg.ContentDir, watch.DefaultDebounce, func() { reportContent(a) })
				go func() {
					if err := w.Run(ctx); err != nil {
						log.Printf("Content watcher stopped: %v", err)
					}
				}()
			}

			return runServer(ctx, a.server())
		},
	}
	cmd.Flags().BoolVar(&watchContent, "watch", false, "watch the blog directory and report changes")
	return cmd
}

// runServer serves until ctx is done, then shuts down gracefully
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func reportContent(a *app) {
	count, collisions, err := a.checkContent()
	if err != nil {
		log.Printf("Content error: %v", err)
		return
	}
	log.Printf("Loaded %d posts from %s", count, a.posts.Dir())

	slugs := make([]string, 0, len(collisions))
	for slug := range collisions {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		log.Printf("Slug %q is shared by %v; only the newest is reachable", slug, collisions[slug])
	}
}
