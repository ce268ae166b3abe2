package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopkit/productgroups/internal/api"
	v1 "github.com/shopkit/productgroups/internal/api/v1"
	"github.com/shopkit/productgroups/internal/cache"
	"github.com/shopkit/productgroups/internal/config"
	"github.com/shopkit/productgroups/internal/httpclient"
	"github.com/shopkit/productgroups/internal/logger"
	"github.com/shopkit/productgroups/internal/postgres"
	"github.com/shopkit/productgroups/internal/repository"
	"github.com/shopkit/productgroups/internal/service"
	"github.com/shopkit/productgroups/internal/shopify"
	"github.com/shopkit/productgroups/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,
			postgres.NewClient,

			// HTTP Client
			httpclient.NewDefaultClient,

			// External collaborators
			shopify.NewStorefrontClient,

			// Repositories
			repository.NewGroupRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewGroupService,
			service.NewStorefrontService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	groupService service.GroupService,
	storefrontService service.StorefrontService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(logger),
		Group:      v1.NewGroupHandler(groupService, logger),
		Storefront: v1.NewStorefrontHandler(storefrontService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration) *gin.Engine {
	return api.NewRouter(handlers, cfg)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	db *postgres.DB,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			db.Close()
			return nil
		},
	})
}
