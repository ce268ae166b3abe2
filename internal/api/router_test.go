package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	v1 "github.com/shopkit/productgroups/internal/api/v1"
	"github.com/shopkit/productgroups/internal/config"
	"github.com/shopkit/productgroups/internal/types"
	"github.com/stretchr/testify/assert"
)

func newTestHandlers() Handlers {
	return Handlers{
		Health:     v1.NewHealthHandler(nil),
		Group:      v1.NewGroupHandler(nil, nil),
		Storefront: v1.NewStorefrontHandler(nil, nil),
	}
}

func TestNewRouter(t *testing.T) {
	t.Run("prod_mode_switches_gin_to_release", func(t *testing.T) {
		defer gin.SetMode(gin.TestMode)

		cfg := config.GetDefaultConfig()
		cfg.Deployment.Mode = types.ModeProd

		NewRouter(newTestHandlers(), cfg)
		assert.Equal(t, gin.ReleaseMode, gin.Mode())
	})

	t.Run("local_mode_leaves_gin_mode_alone", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		cfg := config.GetDefaultConfig()
		NewRouter(newTestHandlers(), cfg)
		assert.Equal(t, gin.TestMode, gin.Mode())
	})

	t.Run("health_endpoint_is_unauthenticated", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		r := NewRouter(newTestHandlers(), config.GetDefaultConfig())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin_routes_require_a_shop", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		r := NewRouter(newTestHandlers(), config.GetDefaultConfig())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/product-groups", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
