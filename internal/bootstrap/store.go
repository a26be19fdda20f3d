// Package bootstrap opens the task store selected by configuration.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/config"
	pgInfra "github.com/fastygo/taskboard/internal/infrastructure/postgres"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/repository/postgres"
	"github.com/fastygo/taskboard/repository/sqlite"
)

// Store is an opened task repository and the function releasing it.
type Store struct {
	Tasks  repository.TaskRepository
	Driver string
	Close  func() error
}

// OpenStore connects to the configured driver. Postgres migrations run first
// when enabled; the SQLite schema is applied on open.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return &Store{
			Tasks:  postgres.NewTaskRepository(pool),
			Driver: config.DriverPostgres,
			Close: func() error {
				pgInfra.Close(pool, logger)
				return nil
			},
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		logger.Info("opened sqlite task store", zap.String("path", db.Path()))
		return &Store{
			Tasks:  sqlite.NewTaskRepository(db),
			Driver: config.DriverSQLite,
			Close:  db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
