package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"atelier/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	root    string
	cfgFile string
}

func setupTestEnv(t *testing.T, posts map[string]string) *testEnv {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content", "blog")
	require.NoError(t, os.MkdirAll(contentDir, 0755))
	for name, body := range posts {
		require.NoError(t, os.WriteFile(filepath.Join(contentDir, name), []byte(body), 0644))
	}

	cfgFile := filepath.Join(root, "atelier.yaml")
	cfg := fmt.Sprintf(`
contentDir: %s
dataDir: %s
ordersDir: %s
ledgerDir: %s
baseURL: https://isabela.example
`, contentDir, filepath.Join(root, "data"), filepath.Join(root, "data", "orders"), filepath.Join(root, "data", "ledger"))
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0644))

	return &testEnv{root: root, cfgFile: cfgFile}
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) (int, string) {
	var out bytes.Buffer
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(append([]string{"--config", e.cfgFile}, args...))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(&out, "Error:", err)
		return 1, out.String()
	}
	return 0, out.String()
}

var samplePosts = map[string]string{
	"a.md": "---\ntitle: Óptica\ndate: 2025-09-01\n---\nLentes e espelhos.",
	"b.md": "---\ntitle: Ondas\ndate: 2025-07-10\n---\nFrequência.",
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	code := Execute([]string{"version"}, &out, &out)
	assert.Equal(t, 0, code)
	assert.Equal(t, "atelier version "+cliVersion+"\n", out.String())
}

func TestPostsCommands(t *testing.T) {
	env := setupTestEnv(t, samplePosts)

	t.Run("list", func(t *testing.T) {
		code, out := env.run(t, "", "posts", "list")
		require.Equal(t, 0, code, out)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "SLUG")
		assert.Contains(t, lines[1], "2025-09-01-optica")
		assert.Contains(t, lines[2], "2025-07-10-ondas")
	})

	t.Run("check clean", func(t *testing.T) {
		code, out := env.run(t, "", "posts", "check")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "2 posts checked")
	})

	t.Run("check collision", func(t *testing.T) {
		dup := setupTestEnv(t, map[string]string{
			"x.md": "---\ntitle: Ondas\ndate: 2025-07-10\n---\num",
			"y.md": "---\ntitle: ondas\ndate: 2025-07-10\n---\ndois",
		})
		code, out := dup.run(t, "", "posts", "check")
		assert.Equal(t, 1, code)
		assert.Contains(t, out, "duplicate slug 2025-07-10-ondas")
	})
}

func TestFeedCommand(t *testing.T) {
	env := setupTestEnv(t, samplePosts)

	code, out := env.run(t, "", "feed")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "<link>https://isabela.example/blog/2025-09-01-optica</link>")

	code, out = env.run(t, "", "feed", "--base-url", "http://localhost:5000/")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "<link>http://localhost:5000/blog/2025-07-10-ondas</link>")
}

func configFromFile(path string) (config.Config, error) {
	return config.Load(viper.New(), path)
}

func submitOrders(t *testing.T, env *testEnv, n int) {
	cfg, err := configFromFile(env.cfgFile)
	require.NoError(t, err)

	a := newApp(cfg)
	require.NoError(t, a.openLedger())
	defer a.Close()

	for i := 0; i < n; i++ {
		_, err := a.orders.Create([]byte(fmt.Sprintf(`{"customer":{"name":"Ana"},"n":%d}`, i)))
		require.NoError(t, err)
	}
}

func TestOrdersCommands(t *testing.T) {
	env := setupTestEnv(t, nil)
	submitOrders(t, env, 2)

	t.Run("list", func(t *testing.T) {
		code, out := env.run(t, "", "orders", "list")
		require.Equal(t, 0, code, out)
		assert.Contains(t, out, "NUMBER")
		assert.Contains(t, out, "-000001.json")
		assert.Contains(t, out, "-000002.json")
	})

	t.Run("show", func(t *testing.T) {
		code, out := env.run(t, "", "orders", "show", "2")
		require.Equal(t, 0, code, out)
		assert.Contains(t, out, `"name": "Ana"`)

		code, out = env.run(t, "", "orders", "show", "9")
		assert.Equal(t, 1, code)
		assert.Contains(t, out, "order 9 not found")

		code, _ = env.run(t, "", "orders", "show", "abc")
		assert.Equal(t, 1, code)
	})

	backup := filepath.Join(env.root, "ledger.bak")

	t.Run("backup", func(t *testing.T) {
		code, out := env.run(t, "", "orders", "backup", "-o", backup)
		require.Equal(t, 0, code, out)
		assert.Contains(t, out, "backed up successfully")

		fi, err := os.Stat(backup)
		require.NoError(t, err)
		assert.NotZero(t, fi.Size())
	})

	t.Run("restore cancelled", func(t *testing.T) {
		code, out := env.run(t, "n\n", "orders", "restore", backup)
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "Operation cancelled")
	})

	t.Run("restore", func(t *testing.T) {
		submitOrders(t, env, 1)

		code, out := env.run(t, "", "orders", "restore", "--yes", backup)
		require.Equal(t, 0, code, out)
		assert.Contains(t, out, "restored successfully")

		_, out = env.run(t, "", "orders", "list")
		assert.Contains(t, out, "-000002.json")
		assert.NotContains(t, out, "-000003.json")
	})

	t.Run("restore missing file", func(t *testing.T) {
		code, out := env.run(t, "", "orders", "restore", filepath.Join(env.root, "nope.bak"))
		assert.Equal(t, 1, code)
		assert.Contains(t, out, "backup file does not exist")
	})
}

func TestRunServer(t *testing.T) {
	env := setupTestEnv(t, samplePosts)
	cfg, err := configFromFile(env.cfgFile)
	require.NoError(t, err)

	// Find an available port.
	listener, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	cfg.Addr = listener.Addr().String()
	listener.Close()

	a := newApp(cfg)
	require.NoError(t, a.openLedger())
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, a.server()) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + cfg.Addr + "/health")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
