// Package persistence opens the store selected by configuration.
package persistence

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"example.com/exam-crud/internal/config"
	domproduct "example.com/exam-crud/internal/domain/product"
	domuser "example.com/exam-crud/internal/domain/user"
	"example.com/exam-crud/internal/infra/migrations"
	"example.com/exam-crud/internal/infra/persistence/memory"
	"example.com/exam-crud/internal/infra/persistence/mysql"
	"example.com/exam-crud/internal/infra/persistence/postgres"
	"example.com/exam-crud/internal/infra/persistence/sqlite"
)

type Stores struct {
	Products domproduct.Repository
	Users    domuser.Repository
	Ping     func(ctx context.Context) error
	Close    func() error
}

func Open(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*Stores, error) {
	log = log.WithField("driver", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case config.DriverMySQL:
		if cfg.AutoMigrate {
			if err := migrations.Up(cfg.StorageDriver, cfg.MySQLDSN); err != nil {
				return nil, err
			}
			log.Info("migrations applied")
		}
		db, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Products: mysql.NewProductRepository(db),
			Users:    mysql.NewUserRepository(db),
			Ping:     db.PingContext,
			Close:    db.Close,
		}, nil

	case config.DriverPostgres:
		if cfg.AutoMigrate {
			if err := migrations.Up(cfg.StorageDriver, cfg.PostgresDSN); err != nil {
				return nil, err
			}
			log.Info("migrations applied")
		}
		pool, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Products: postgres.NewProductRepository(pool),
			Users:    postgres.NewUserRepository(pool),
			Ping:     pool.Ping,
			Close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "sqlite handle")
		}
		log.WithField("path", cfg.SQLitePath).Info("using local sqlite file")
		return &Stores{
			Products: sqlite.NewProductRepository(db),
			Users:    sqlite.NewUserRepository(db),
			Ping:     sqlDB.PingContext,
			Close:    sqlDB.Close,
		}, nil

	case config.DriverMemory:
		return &Stores{
			Products: memory.NewProductRepository(),
			Users:    memory.NewUserRepository(),
			Ping:     func(context.Context) error { return nil },
			Close:    func() error { return nil },
		}, nil
	}
	return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
