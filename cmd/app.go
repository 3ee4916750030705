package cmd

import (
	"fmt"
	"net/http"
	"time"

	"atelier/app/content"
	"atelier/app/feed"
	"atelier/app/repositories"
	"atelier/app/routes"
	"atelier/app/services"
	"atelier/internal/config"
)

// app wires repositories and services from configuration
type app struct {
	cfg     config.Config
	posts   *repositories.MarkdownPostRepository
	catalog *repositories.JSONCatalogRepository

	// Set by openLedger
	ledger *repositories.Ledger
	orders *repositories.FileOrderRepository
}

func newApp(cfg config.Config) *app {
	return &app{
		cfg:     cfg,
		posts:   repositories.NewMarkdownPostRepository(cfg.ContentDir),
		catalog: repositories.NewJSONCatalogRepository(cfg.DataDir),
	}
}

// openLedger opens the order ledger. Only one process may hold it.
func (a *app) openLedger() error {
	ledger, err := repositories.OpenLedger(a.cfg.LedgerDir)
	if err != nil {
		return err
	}
	a.ledger = ledger
	a.orders = repositories.NewFileOrderRepository(a.cfg.OrdersDir, ledger)
	return nil
}

func (a *app) Close() error {
	if a.ledger == nil {
		return nil
	}
	return a.ledger.Close()
}

func (a *app) feedService() *services.FeedService {
	return services.NewFeedService(a.posts, feed.Options{
		Title:       a.cfg.FeedTitle,
		Description: a.cfg.FeedDescription,
		Language:    a.cfg.FeedLanguage,
	})
}

func (a *app) handler() http.Handler {
	return routes.SetupRoutes(routes.Services{
		Posts:   services.NewPostService(a.posts),
		Orders:  services.NewOrderService(a.orders),
		Feed:    a.feedService(),
		Catalog: services.NewCatalogService(a.catalog),
	}, routes.Options{
		SiteTitle:         a.cfg.SiteTitle,
		StaticDir:         a.cfg.StaticDir,
		FeedBaseURL:       a.cfg.BaseURL,
		CORSOrigins:       a.cfg.CORSOrigins,
		CheckoutRateLimit: a.cfg.RateLimit,
	})
}

func (a *app) server() *http.Server {
	return &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// checkContent loads every post and returns how many there are along with
// any slugs shared by several files.
func (a *app) checkContent() (int, map[string][]string, error) {
	posts, err := a.posts.List()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load posts from %s: %w", a.posts.Dir(), err)
	}
	return len(posts), content.FindSlugCollisions(posts), nil
}
