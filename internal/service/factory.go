package service

import (
	"github.com/shopkit/productgroups/internal/config"
	"github.com/shopkit/productgroups/internal/domain/catalog"
	"github.com/shopkit/productgroups/internal/domain/group"
	"github.com/shopkit/productgroups/internal/logger"
	"github.com/shopkit/productgroups/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	GroupRepo group.Repository

	// External collaborators
	CatalogClient catalog.Client
}

// NewServiceParams creates a new ServiceParams instance
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	groupRepo group.Repository,
	catalogClient catalog.Client,
) ServiceParams {
	return ServiceParams{
		Logger:        logger,
		Config:        config,
		DB:            db,
		GroupRepo:     groupRepo,
		CatalogClient: catalogClient,
	}
}
