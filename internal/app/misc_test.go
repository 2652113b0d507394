package app_test

import (
	"net/http"
	"strings"
	"testing"

	"irrigation_backend/internal/config"
	"irrigation_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		res, body := ts.SendRequest(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.JSONEq(t, `{"status":"ok"}`, body, path)
	}
}

func TestRequestID(t *testing.T) {
	ts := testutil.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/health", "", nil)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+"/api/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "trace-42")
	res, err = ts.Server.Client().Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "trace-42", res.Header.Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	ts := testutil.NewTestServer(t, func(cfg *config.Config) {
		cfg.CORS.AllowedOrigins = []string{"http://site.test"}
	})

	req, err := http.NewRequest(http.MethodOptions, ts.Server.URL+"/api/products", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://site.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	res.Body.Close()

	assert.Less(t, res.StatusCode, 300)
	assert.Equal(t, "http://site.test", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)

	ts.SendRequest(t, http.MethodGet, ts.API("/categories"), "", nil)
	ts.Upload(t, ts.API("/upload?uploadType=gallery"), token, "file", "a.png", []byte("12345"))
	ts.Upload(t, ts.API("/upload?uploadType=.."), token, "file", "a.png", []byte("12345"))

	res, body := ts.SendRequest(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `irrigation_http_requests_total{method="GET",route="/api/categories",status="200"} 1`)
	assert.Contains(t, body, `irrigation_upload_bytes_total{upload_type="gallery"} 5`)
	assert.Contains(t, body, `irrigation_upload_errors_total{upload_type="invalid"} 1`)
}

func TestSwaggerDoc(t *testing.T) {
	ts := testutil.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	doc := testutil.DecodeJSON[map[string]any](t, body)
	assert.Equal(t, "/api", doc["basePath"])

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok, body)
	for _, p := range []string{"/categories", "/products/{id}", "/contact/{id}/status", "/upload", "/stats"} {
		assert.Contains(t, paths, p)
	}
}

func TestSitePages(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := ts.Login(t)

	categoryID := createCategory(t, ts, token, "Sprinklers")
	product := productBody(categoryID, "rotor")
	product["featured"] = true
	res, body := ts.SendRequest(t, http.MethodPost, ts.API("/products"), token, product)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, ts.API("/partners"), token, map[string]any{
		"name": "Acme", "logo": "data:image/png;base64,iVBORw0KGgo=", "order": 0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, ts.API("/features"), token, map[string]any{
		"icon": "DropletIcon", "title": "Smart watering", "description": "Sensors decide", "order": 0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	t.Run("Home", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/html"))
		assert.Contains(t, body, `src="http://api.test/uploads/products/1700000000000-1-rotor.png"`)
		assert.Contains(t, body, `src="data:image/png;base64,iVBORw0KGgo="`)
		assert.Contains(t, body, `data-icon="droplet"`)
		assert.Contains(t, body, "Smart watering")
	})

	t.Run("Products filtered by category", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/products?category="+categoryID, "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.Contains(t, body, "rotor")

		res, body = ts.SendRequest(t, http.MethodGet, "/products?category=Sprinklers", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		assert.Contains(t, body, "rotor")
	})

	t.Run("Gallery and downloads render empty", func(t *testing.T) {
		for _, path := range []string{"/gallery", "/downloads"} {
			res, body := ts.SendRequest(t, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusOK, res.StatusCode, path)
			assert.Contains(t, body, "<html", path)
		}
	})

	t.Run("Disabled site", func(t *testing.T) {
		off := testutil.NewTestServer(t, func(cfg *config.Config) { cfg.Site.Enabled = false })
		res, _ := off.SendRequest(t, http.MethodGet, "/", "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}
