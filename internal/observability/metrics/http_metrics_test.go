package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m := NewHTTPMetrics(registry)

	router := gin.New()
	router.Use(m.GinMiddleware())
	router.GET("/api/products/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
		router.ServeHTTP(rec, req)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/products/:id", "404"))
	if got != 3 {
		t.Fatalf("expected 3 requests, got %v", got)
	}
}
