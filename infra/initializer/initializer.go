// Package initializer wires configuration, storage and services together for
// the entrypoints.
package initializer

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mhgaber/branchbank/infra"
	infrarepo "github.com/mhgaber/branchbank/infra/repository"
	"github.com/mhgaber/branchbank/pkg/config"
	"github.com/mhgaber/branchbank/pkg/repository"
	"github.com/mhgaber/branchbank/pkg/service/audit"
	"github.com/mhgaber/branchbank/pkg/service/auth"
	"github.com/mhgaber/branchbank/pkg/service/customer"
	"github.com/mhgaber/branchbank/pkg/service/ledger"
)

// Deps holds every dependency the entrypoints need.
type Deps struct {
	DB        *gorm.DB
	UoW       repository.UnitOfWork
	Ledger    *ledger.Service
	Customers *customer.Service
	Audit     *audit.Service
	Auth      *auth.Service
	Logger    *slog.Logger
}

// InitializeDependencies builds the logger, opens the database, migrates the
// schema and constructs all services.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	return &Deps{
		DB:        db,
		UoW:       uow,
		Ledger:    ledger.New(uow, logger),
		Customers: customer.New(uow, logger),
		Audit:     audit.New(uow),
		Auth:      auth.New(uow, cfg.Jwt, logger),
		Logger:    logger,
	}, nil
}
