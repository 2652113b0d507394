package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUpload(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.RecordUpload("image", 10*time.Millisecond, 2048, nil)
	m.RecordUpload("image", 5*time.Millisecond, 0, errors.New("too large"))

	assert.Equal(t, float64(2048), testutil.ToFloat64(m.uploadBytes.WithLabelValues("image")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.uploadErrors.WithLabelValues("image")))
}

func TestGinMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, err := New()
	require.NoError(t, err)

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/api/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b", "c"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/products/:id", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "irrigation_http_requests_total")
}
