package cmd

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// store is an opened backend: repositories plus the hooks the commands need.
type store struct {
	repo    *repository.Repository
	ping    func(ctx context.Context) error
	migrate func(ctx context.Context) error
	close   func()
}

func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (*store, error) {
	switch config.Database.Driver {
	case utils.DriverSQLite:
		db, err := database.OpenSQLite(config.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}

		logger.Info("SQLite store opened", zap.String("path", config.Database.SQLitePath))
		return &store{
			repo:    repository.NewGormRepository(db, logger),
			ping:    sqlDB.PingContext,
			migrate: func(context.Context) error { return repository.AutoMigrate(db) },
			close:   func() { _ = sqlDB.Close() },
		}, nil

	default:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, err
		}

		logger.Info("Database connected successfully",
			zap.String("host", config.Database.Host),
			zap.String("database", config.Database.Name),
		)
		return &store{
			repo:    repository.NewRepository(db, logger, repository.WithLockTimeout(config.Booking.LockTimeout)),
			ping:    db.Ping,
			migrate: func(ctx context.Context) error { return database.Migrate(ctx, db) },
			close:   db.Close,
		}, nil
	}
}
