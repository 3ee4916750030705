package routes

import (
	"os"
	"path/filepath"
	"testing"

	"atelier/app/feed"
	"atelier/app/repositories"
	"atelier/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type testSite struct {
	root      string
	ordersDir string
	ledger    *repositories.Ledger
	router    *mux.Router
}

var testPosts = map[string]string{
	"2025-09-01-cinematica.md": "---\ntitle: Cinemática básica\ndate: 2025-09-01\ntags: física, enem\n---\n# Cinemática\n\nMovimento uniforme e variado.",
	"2025-08-15-funcoes.md":    "---\ntitle: Funções afins\ndate: 2025-08-15\n---\nA função afim.",
	"sem-data.md":              "Um texto sem cabeçalho.",
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func setupTestSite(t *testing.T, opts Options) *testSite {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content", "blog")
	dataDir := filepath.Join(root, "data")
	staticDir := filepath.Join(root, "static")

	writeFiles(t, contentDir, testPosts)
	writeFiles(t, dataDir, map[string]string{
		repositories.ProductsFile: `[{"id":"aula","title":"Aula particular","price":120.0}]`,
		repositories.SocialFile:   `{"instagram":"https://instagram.com/isabela"}`,
	})
	writeFiles(t, staticDir, map[string]string{"css/style.css": "body { margin: 0; }"})

	ledger, err := repositories.OpenLedger("")
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })

	ordersDir := filepath.Join(dataDir, "orders")
	postRepo := repositories.NewMarkdownPostRepository(contentDir)
	catalogRepo := repositories.NewJSONCatalogRepository(dataDir)
	orderRepo := repositories.NewFileOrderRepository(ordersDir, ledger)

	opts.StaticDir = staticDir
	router := SetupRoutes(Services{
		Posts:   services.NewPostService(postRepo),
		Orders:  services.NewOrderService(orderRepo),
		Feed:    services.NewFeedService(postRepo, feed.Options{}),
		Catalog: services.NewCatalogService(catalogRepo),
	}, opts)

	return &testSite{
		root:      root,
		ordersDir: ordersDir,
		ledger:    ledger,
		router:    router,
	}
}
