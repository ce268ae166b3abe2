package repository

import (
	"github.com/shopkit/productgroups/internal/domain/group"
	"github.com/shopkit/productgroups/internal/logger"
	"github.com/shopkit/productgroups/internal/postgres"
	postgresRepo "github.com/shopkit/productgroups/internal/repository/postgres"
)

func NewGroupRepository(db *postgres.DB, logger *logger.Logger) group.Repository {
	return postgresRepo.NewGroupRepository(db, logger)
}
