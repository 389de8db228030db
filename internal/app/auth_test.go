package app

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func metricsRouter(enabled bool) *gin.Engine {
	router := gin.New()
	router.GET("/metrics", metricsAuthMiddleware(enabled, "prometheus", "secret123"), func(c *gin.Context) {
		c.String(http.StatusOK, "metrics")
	})
	return router
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestMetricsAuthMiddleware_Disabled(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	metricsRouter(false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "metrics", w.Body.String())
}

func TestMetricsAuthMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"valid credentials", basicAuth("prometheus", "secret123"), http.StatusOK},
		{"wrong username", basicAuth("wronguser", "secret123"), http.StatusUnauthorized},
		{"wrong password", basicAuth("prometheus", "wrongpass"), http.StatusUnauthorized},
		{"both wrong", basicAuth("wronguser", "wrongpass"), http.StatusUnauthorized},
		{"no header", "", http.StatusUnauthorized},
		{"bearer instead of basic", "Bearer secret123", http.StatusUnauthorized},
	}

	router := metricsRouter(true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusUnauthorized {
				assert.Equal(t, metricsRealm, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestCredentialsMatch(t *testing.T) {
	t.Parallel()
	assert.True(t, credentialsMatch("a", "b", "a", "b"))
	assert.False(t, credentialsMatch("a", "x", "a", "b"))
	assert.False(t, credentialsMatch("x", "b", "a", "b"))
	assert.False(t, credentialsMatch("", "", "a", "b"))
}
