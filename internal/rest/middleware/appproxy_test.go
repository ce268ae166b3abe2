package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopkit/productgroups/internal/config"
	"github.com/shopkit/productgroups/internal/types"
	"github.com/stretchr/testify/assert"
)

const testAppSecret = "hush"

// signQuery produces the signature Shopify would attach to the query
func signQuery(secret string, query url.Values) string {
	pairs := make([]string, 0, len(query))
	for key, values := range query {
		pairs = append(pairs, key+"="+strings.Join(values, ","))
	}
	sort.Strings(pairs)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "")))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyProxySignature(t *testing.T) {
	query := url.Values{
		"shop":           {"acme-demo.myshopify.com"},
		"product_handle": {"summer-sandal"},
		"timestamp":      {"1724968800"},
	}
	signature := signQuery(testAppSecret, query)

	t.Run("valid_signature", func(t *testing.T) {
		signed := url.Values{}
		for k, v := range query {
			signed[k] = v
		}
		signed.Set("signature", signature)
		assert.True(t, verifyProxySignature(testAppSecret, signed, signature))
	})

	t.Run("tampered_parameter", func(t *testing.T) {
		tampered := url.Values{}
		for k, v := range query {
			tampered[k] = v
		}
		tampered.Set("shop", "evil-shop.myshopify.com")
		tampered.Set("signature", signature)
		assert.False(t, verifyProxySignature(testAppSecret, tampered, signature))
	})

	t.Run("wrong_secret", func(t *testing.T) {
		assert.False(t, verifyProxySignature("other-secret", query, signature))
	})

	t.Run("missing_signature", func(t *testing.T) {
		assert.False(t, verifyProxySignature(testAppSecret, query, ""))
	})

	t.Run("missing_secret", func(t *testing.T) {
		assert.False(t, verifyProxySignature("", query, signature))
	})
}

func TestAppProxyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	cfg.Shopify.AppSecret = testAppSecret

	newRouter := func() (*gin.Engine, *string) {
		var seenShop string
		r := gin.New()
		r.Use(ErrorHandler())
		r.Use(AppProxyMiddleware(cfg))
		r.GET("/proxy/product-groups", func(c *gin.Context) {
			seenShop = types.GetShopDomain(c.Request.Context())
			c.Status(http.StatusOK)
		})
		return r, &seenShop
	}

	t.Run("signed_request_passes_and_sets_shop", func(t *testing.T) {
		query := url.Values{
			"shop":           {"acme-demo.myshopify.com"},
			"product_handle": {"summer-sandal"},
		}
		query.Set("signature", signQuery(testAppSecret, url.Values{
			"shop":           {"acme-demo.myshopify.com"},
			"product_handle": {"summer-sandal"},
		}))

		r, seenShop := newRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/proxy/product-groups?"+query.Encode(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "acme-demo.myshopify.com", *seenShop)
	})

	t.Run("unsigned_request_is_rejected", func(t *testing.T) {
		r, _ := newRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/proxy/product-groups?shop=acme-demo.myshopify.com", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing_shop_is_rejected", func(t *testing.T) {
		r, _ := newRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/proxy/product-groups", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
