package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"atelier/app/feed"
	"atelier/app/models"
	"atelier/app/repositories/mock"
	"atelier/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	posts   *mock.PostRepository
	orders  *mock.OrderRepository
	catalog *mock.CatalogRepository
	router  *mux.Router
}

func samplePosts() []*models.Post {
	return []*models.Post{
		{
			Title:   "Cinemática",
			Date:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			Slug:    "2025-09-01-cinematica",
			HTML:    "<p>MRU e MRUV</p>",
			Summary: "MRU e MRUV",
			Tags:    []string{"física"},
		},
		{
			Title:   "Funções",
			Date:    time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Slug:    "2025-08-01-funcoes",
			Summary: "Afim e quadrática",
			Tags:    []string{},
		},
	}
}

func setupTestRouter(t *testing.T) *testDeps {
	deps := &testDeps{
		posts:   mock.NewPostRepository(samplePosts()...),
		orders:  mock.NewOrderRepository(),
		catalog: mock.NewCatalogRepository(),
	}

	postService := services.NewPostService(deps.posts)
	catalogService := services.NewCatalogService(deps.catalog)
	pages := NewPageController(postService, catalogService, "Ateliê")
	posts := NewPostController(postService)
	catalog := NewCatalogController(catalogService)
	checkout := NewCheckoutController(services.NewOrderService(deps.orders))
	rss := NewFeedController(services.NewFeedService(deps.posts, feed.Options{}), "")
	health := NewHealthController()
	health.now = func() time.Time { return time.Date(2025, 9, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600)) }

	router := mux.NewRouter()
	router.HandleFunc("/", pages.Home).Methods("GET")
	router.HandleFunc("/blog", pages.Blog).Methods("GET")
	router.HandleFunc("/blog/{slug}", pages.Post).Methods("GET")
	router.HandleFunc("/shop", pages.Shop).Methods("GET")
	router.HandleFunc("/checkout", pages.Checkout).Methods("GET")
	router.HandleFunc("/checkout", checkout.Submit).Methods("POST")
	router.HandleFunc("/api/posts", posts.Index).Methods("GET")
	router.HandleFunc("/api/posts/{slug}", posts.Show).Methods("GET")
	router.HandleFunc("/api/products", catalog.Products).Methods("GET")
	router.HandleFunc("/api/rss.xml", rss.RSS).Methods("GET")
	router.HandleFunc("/health", health.Health).Methods("GET")
	router.NotFoundHandler = http.HandlerFunc(pages.NotFound)
	deps.router = router
	return deps
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPageController(t *testing.T) {
	deps := setupTestRouter(t)

	tests := []struct {
		name     string
		path     string
		status   int
		contains string
	}{
		{"home", "/", http.StatusOK, "Cinemática"},
		{"blog", "/blog", http.StatusOK, "Funções"},
		{"post", "/blog/2025-09-01-cinematica", http.StatusOK, "<p>MRU e MRUV</p>"},
		{"missing post", "/blog/nao-existe", http.StatusNotFound, "Página não encontrada"},
		{"shop", "/shop", http.StatusOK, "productList"},
		{"checkout page", "/checkout", http.StatusOK, "checkoutForm"},
		{"unknown page", "/nada", http.StatusNotFound, "Página não encontrada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(deps.router, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestPageController_HomeShowsThreePosts(t *testing.T) {
	deps := setupTestRouter(t)
	for i := 0; i < 4; i++ {
		deps.posts.Posts = append(deps.posts.Posts, &models.Post{Title: "Extra", Slug: "extra", Date: models.Epoch})
	}

	w := do(deps.router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, strings.Count(w.Body.String(), `class="card post"`))
}

func TestPageController_BrokenSocialFile(t *testing.T) {
	deps := setupTestRouter(t)
	deps.catalog.Err = errors.New("social.json: bad")

	w := do(deps.router, http.MethodGet, "/blog", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPostController(t *testing.T) {
	deps := setupTestRouter(t)

	t.Run("list posts", func(t *testing.T) {
		w := do(deps.router, http.MethodGet, "/api/posts", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response struct {
			Posts []models.Post `json:"posts"`
			Count int           `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Count)
		assert.Equal(t, "2025-09-01-cinematica", response.Posts[0].Slug)
	})

	t.Run("get post", func(t *testing.T) {
		w := do(deps.router, http.MethodGet, "/api/posts/2025-08-01-funcoes", "")
		require.Equal(t, http.StatusOK, w.Code)

		var post models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, "Funções", post.Title)
	})

	t.Run("missing post", func(t *testing.T) {
		w := do(deps.router, http.MethodGet, "/api/posts/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
	})

	t.Run("unknown api path", func(t *testing.T) {
		w := do(deps.router, http.MethodGet, "/api/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})
}

func TestCatalogController(t *testing.T) {
	deps := setupTestRouter(t)
	deps.catalog.ProductList = []any{map[string]any{"id": "p1", "extra": []any{"kept"}}}

	w := do(deps.router, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"p1","extra":["kept"]}]`, w.Body.String())

	deps.catalog.Err = errors.New("bad products")
	w = do(deps.router, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCheckoutController(t *testing.T) {
	valid := `{"customer":{"name":"Ana","email":"ana@example.com"},"items":[{"id":"p1","title":"Aula","qty":1,"price":120}],"total":120}`

	t.Run("accepted", func(t *testing.T) {
		deps := setupTestRouter(t)
		w := do(deps.router, http.MethodPost, "/checkout", valid)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"message":"Pedido recebido! Entraremos em contato por e-mail."}`, w.Body.String())
		assert.Len(t, deps.orders.Payloads, 1)
	})

	t.Run("incomplete", func(t *testing.T) {
		deps := setupTestRouter(t)
		w := do(deps.router, http.MethodPost, "/checkout", `{"customer":{"name":"Ana"},"items":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"ok":false,"message":"Dados incompletos."}`, w.Body.String())
		assert.Empty(t, deps.orders.Payloads)
	})

	t.Run("malformed", func(t *testing.T) {
		deps := setupTestRouter(t)
		w := do(deps.router, http.MethodPost, "/checkout", `not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too large", func(t *testing.T) {
		deps := setupTestRouter(t)
		w := do(deps.router, http.MethodPost, "/checkout", strings.Repeat(" ", MaxOrderBytes+1))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Empty(t, deps.orders.Payloads)
	})

	t.Run("storage failure", func(t *testing.T) {
		deps := setupTestRouter(t)
		deps.orders.Err = errors.New("read-only file system")
		w := do(deps.router, http.MethodPost, "/checkout", valid)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "read-only")
	})
}

func TestFeedController(t *testing.T) {
	deps := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/rss.xml", nil)
	req.Host = "isabela.example"
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<link>https://isabela.example/blog/2025-09-01-cinematica</link>")

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	t.Run("not modified", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rss.xml", nil)
		req.Host = "isabela.example"
		req.Header.Set("X-Forwarded-Proto", "https")
		req.Header.Set("If-None-Match", etag)
		w := httptest.NewRecorder()
		deps.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("configured base URL", func(t *testing.T) {
		fc := NewFeedController(services.NewFeedService(deps.posts, feed.Options{}), "https://fixed.example/")
		w := httptest.NewRecorder()
		fc.RSS(w, httptest.NewRequest(http.MethodGet, "/api/rss.xml", nil))

		assert.Contains(t, w.Body.String(), "<link>https://fixed.example/blog/2025-08-01-funcoes</link>")
	})
}

func TestHealthController(t *testing.T) {
	deps := setupTestRouter(t)

	w := do(deps.router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, "2025-09-01T15:00:00Z", response["time"])
}

func TestRequestBaseURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost:5000/api/rss.xml", nil)
	assert.Equal(t, "http://localhost:5000", requestBaseURL(req))

	req.Header.Set("X-Forwarded-Proto", "https, http")
	assert.Equal(t, "https://localhost:5000", requestBaseURL(req))
}
