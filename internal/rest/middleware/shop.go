package middleware

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/types"
)

// HeaderShopDomain carries the shop resolved by the embedded-admin auth
// layer in front of this service.
const HeaderShopDomain = "X-Shopify-Shop-Domain"

// ShopMiddleware resolves the tenant for the admin API. The upstream auth
// layer has already verified the session; this trusts its shop header and
// puts it in the request context where every repository reads it.
func ShopMiddleware(c *gin.Context) {
	shop := c.GetHeader(HeaderShopDomain)
	if shop == "" {
		c.Error(ierr.NewError("missing shop header").
			WithHint("Shop could not be resolved for this request").
			Mark(ierr.ErrPermissionDenied))
		c.Abort()
		return
	}

	ctx := types.SetShopDomain(c.Request.Context(), shop)
	c.Request = c.Request.WithContext(ctx)

	c.Next()
}
