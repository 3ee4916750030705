package controllers

import (
	"errors"
	"log"
	"net/http"

	"atelier/app/repositories"
	"atelier/app/services"
	"atelier/app/views"

	"github.com/gorilla/mux"
	g "github.com/maragudk/gomponents"
)

// PageController renders the HTML pages of the site
type PageController struct {
	postService    *services.PostService
	catalogService *services.CatalogService
	siteTitle      string
}

// NewPageController creates a new PageController
func NewPageController(postService *services.PostService, catalogService *services.CatalogService, siteTitle string) *PageController {
	return &PageController{
		postService:    postService,
		catalogService: catalogService,
		siteTitle:      siteTitle,
	}
}

// page loads what the layout needs. Social links are read on every request.
func (pc *PageController) page(w http.ResponseWriter, r *http.Request) (views.Page, bool) {
	social, err := pc.catalogService.Social()
	if err != nil {
		log.Printf("page %s: %v", r.URL.Path, err)
		sendError(w, r, "Internal Server Error", http.StatusInternalServerError)
		return views.Page{}, false
	}
	return views.Page{SiteTitle: pc.siteTitle, Social: social}, true
}

func (pc *PageController) render(w http.ResponseWriter, status int, node g.Node) {
	if err := views.Render(w, status, node); err != nil {
		log.Printf("failed to render page: %v", err)
	}
}

// Home shows the latest posts
func (pc *PageController) Home(w http.ResponseWriter, r *http.Request) {
	p, ok := pc.page(w, r)
	if !ok {
		return
	}
	posts, err := pc.postService.RecentPosts(services.HomePostCount)
	if err != nil {
		log.Printf("home: %v", err)
		sendError(w, r, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}
	pc.render(w, http.StatusOK, views.HomePage(p, posts))
}

func (pc *PageController) Services(w http.ResponseWriter, r *http.Request) {
	if p, ok := pc.page(w, r); ok {
		pc.render(w, http.StatusOK, views.ServicesPage(p))
	}
}

func (pc *PageController) Resume(w http.ResponseWriter, r *http.Request) {
	if p, ok := pc.page(w, r); ok {
		pc.render(w, http.StatusOK, views.ResumePage(p))
	}
}

// Blog lists every post
func (pc *PageController) Blog(w http.ResponseWriter, r *http.Request) {
	p, ok := pc.page(w, r)
	if !ok {
		return
	}
	posts, err := pc.postService.ListPosts()
	if err != nil {
		log.Printf("blog: %v", err)
		sendError(w, r, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}
	pc.render(w, http.StatusOK, views.BlogPage(p, posts))
}

// Post shows a single post by slug
func (pc *PageController) Post(w http.ResponseWriter, r *http.Request) {
	p, ok := pc.page(w, r)
	if !ok {
		return
	}
	post, err := pc.postService.GetPost(mux.Vars(r)["slug"])
	if errors.Is(err, repositories.ErrNotFound) {
		pc.render(w, http.StatusNotFound, views.NotFoundPage(p))
		return
	}
	if err != nil {
		log.Printf("post: %v", err)
		sendError(w, r, "Failed to fetch post", http.StatusInternalServerError)
		return
	}
	pc.render(w, http.StatusOK, views.PostPage(p, post))
}

// Shop lists the products
func (pc *PageController) Shop(w http.ResponseWriter, r *http.Request) {
	p, ok := pc.page(w, r)
	if !ok {
		return
	}
	products, err := pc.catalogService.Products()
	if err != nil {
		log.Printf("shop: %v", err)
		sendError(w, r, "Failed to fetch products", http.StatusInternalServerError)
		return
	}
	pc.render(w, http.StatusOK, views.ShopPage(p, products))
}

func (pc *PageController) Cart(w http.ResponseWriter, r *http.Request) {
	if p, ok := pc.page(w, r); ok {
		pc.render(w, http.StatusOK, views.CartPage(p))
	}
}

func (pc *PageController) Checkout(w http.ResponseWriter, r *http.Request) {
	if p, ok := pc.page(w, r); ok {
		pc.render(w, http.StatusOK, views.CheckoutPage(p))
	}
}

// NotFound renders the HTML 404 page. API paths get a JSON error instead.
func (pc *PageController) NotFound(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		sendError(w, r, "Not found", http.StatusNotFound)
		return
	}
	pc.render(w, http.StatusNotFound, views.NotFoundPage(views.Page{SiteTitle: pc.siteTitle}))
}
