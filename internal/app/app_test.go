package app_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/qkart/config"
	"github.com/niksmo/qkart/internal/app"
	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discard struct{}

func (discard) Notify(domain.Notice)       {}
func (discard) Navigate(domain.Navigation) {}

func testConfig(t *testing.T, endpoint string) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Backend.Endpoint = endpoint
	cfg.Backend.Timeout = time.Second
	cfg.Storage.DSN = filepath.Join(t.TempDir(), "qkart.db")
	cfg.LogFile = filepath.Join(t.TempDir(), "qkart.log")
	return cfg
}

func TestNew(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/products", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"_id":"A","name":"Bag","category":"Fashion","cost":10,"rating":5,"image":""}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a, err := app.New(t.Context(), testConfig(t, srv.URL+"/api/v1"), discard{}, discard{})
	require.NoError(t, err)
	defer a.Close()

	sf := a.Storefront()
	sess, err := sf.RestoreSession(t.Context())
	require.NoError(t, err)
	assert.True(t, sess.IsZero())

	ps, err := sf.LoadCatalog(t.Context())
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Bag", ps[0].Name)
}

func TestNewBadStorage(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1/api/v1")
	cfg.Storage.DSN = filepath.Join(t.TempDir(), "missing", "dir", "qkart.db")

	_, err := app.New(t.Context(), cfg, discard{}, discard{})
	require.Error(t, err)
}

func TestNewBadLogFile(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1/api/v1")
	cfg.LogFile = filepath.Join(t.TempDir(), "missing", "qkart.log")

	_, err := app.New(t.Context(), cfg, discard{}, discard{})
	require.Error(t, err)
}
