package routes

import (
	"net/http"
	"time"

	"atelier/app/controllers"
	"atelier/app/middleware"
	"atelier/app/services"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
)

// Services groups what the controllers need
type Services struct {
	Posts   *services.PostService
	Orders  *services.OrderService
	Feed    *services.FeedService
	Catalog *services.CatalogService
}

// Options tunes the router
type Options struct {
	SiteTitle   string
	StaticDir   string
	FeedBaseURL string
	// CORSOrigins allowed to call /api. Empty allows any origin.
	CORSOrigins []string
	// CheckoutRateLimit is the number of orders accepted per client IP per
	// minute. Zero disables the limit.
	CheckoutRateLimit int
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(svc Services, opts Options) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(chimw.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	pageController := controllers.NewPageController(svc.Posts, svc.Catalog, opts.SiteTitle)
	postController := controllers.NewPostController(svc.Posts)
	catalogController := controllers.NewCatalogController(svc.Catalog)
	checkoutController := controllers.NewCheckoutController(svc.Orders)
	feedController := controllers.NewFeedController(svc.Feed, opts.FeedBaseURL)
	healthController := controllers.NewHealthController()

	// Serve static files
	if opts.StaticDir != "" {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	// Web routes
	router.HandleFunc("/", pageController.Home).Methods("GET")
	router.HandleFunc("/services", pageController.Services).Methods("GET")
	router.HandleFunc("/resume", pageController.Resume).Methods("GET")
	router.HandleFunc("/blog", pageController.Blog).Methods("GET")
	router.HandleFunc("/blog/{slug}", pageController.Post).Methods("GET")
	router.HandleFunc("/shop", pageController.Shop).Methods("GET")
	router.HandleFunc("/cart", pageController.Cart).Methods("GET")
	router.HandleFunc("/checkout", pageController.Checkout).Methods("GET")
	router.Handle("/checkout", rateLimited(opts.CheckoutRateLimit, checkoutController.Submit)).Methods("POST")
	router.HandleFunc("/health", healthController.Health).Methods("GET")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(cors.Handler(corsOptions(opts.CORSOrigins)))
	api.Use(middleware.ContentTypeJSON)

	api.HandleFunc("/rss.xml", feedController.RSS).Methods("GET", "OPTIONS")
	api.HandleFunc("/posts", postController.Index).Methods("GET", "OPTIONS")
	api.HandleFunc("/posts/{slug}", postController.Show).Methods("GET", "OPTIONS")
	api.HandleFunc("/products", catalogController.Products).Methods("GET", "OPTIONS")

	router.NotFoundHandler = http.HandlerFunc(pageController.NotFound)

	return router
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}
}

func rateLimited(limit int, h http.HandlerFunc) http.Handler {
	if limit <= 0 {
		return h
	}
	return httprate.LimitByIP(limit, time.Minute)(h)
}
