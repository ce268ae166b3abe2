package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/shopkit/productgroups/internal/api/v1"
	"github.com/shopkit/productgroups/internal/config"
	"github.com/shopkit/productgroups/internal/rest/middleware"
	"github.com/shopkit/productgroups/internal/types"
)

type Handlers struct {
	Health     *v1.HealthHandler
	Group      *v1.GroupHandler
	Storefront *v1.StorefrontHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// Admin API: shop resolved by the embedded-admin auth layer upstream
	v1Group := router.Group("/v1", middleware.ShopMiddleware)
	registerV1Routes(v1Group, handlers)

	// App proxy: shop resolved from the signed query parameters
	proxy := router.Group("/proxy", middleware.AppProxyMiddleware(cfg))
	proxy.GET("/product-groups", handlers.Storefront.GroupsForProduct)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	groups := router.Group("/product-groups")
	{
		groups.GET("", handlers.Group.ListGroups)
		groups.POST("", handlers.Group.CreateGroup)
		groups.GET("/:id", handlers.Group.GetGroup)
		groups.PUT("/:id", handlers.Group.ReplaceGroup)
		groups.DELETE("/:id", handlers.Group.DeleteGroup)
		groups.POST("/:id/items", handlers.Group.AddItem)
	}

	// item ids are globally unique, so removal does not need the group id
	items := router.Group("/product-group-items")
	{
		items.DELETE("/:item_id", handlers.Group.RemoveItem)
	}
}
