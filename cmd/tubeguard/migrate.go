package main

import (
	"context"
	"fmt"

	"github.com/tubeguard/tubeguard/internal/database"
	"github.com/tubeguard/tubeguard/internal/setup/config"
	"github.com/tubeguard/tubeguard/internal/setup/telemetry"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Database migration management",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize migration tables",
				Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, _ *zap.Logger) error {
					return migrator.Init(ctx)
				}),
			},
			{
				Name:   "up",
				Usage:  "Run pending migrations",
				Action: withMigrator(migrateUp),
			},
			{
				Name:   "down",
				Usage:  "Rollback the last migration group",
				Action: withMigrator(migrateDown),
			},
			{
				Name:  "status",
				Usage: "Show migration status",
				Action: withMigrator(func(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error {
					ms, err := migrator.MigrationsWithStatus(ctx)
					if err != nil {
						return err
					}

					logger.Info("Migration status",
						zap.String("migrations", ms.String()),
						zap.String("unapplied", ms.Unapplied().String()),
						zap.String("last_group", ms.LastGroup().String()),
					)
					return nil
				}),
			},
		},
	}
}

func migrateUp(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error {
	if err := migrator.Init(ctx); err != nil {
		return err
	}

	if err := migrator.Lock(ctx); err != nil {
		return err
	}
	defer migrator.Unlock(ctx) //nolint:errcheck

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		logger.Info("No new migrations to run (database is up to date)")
		return nil
	}

	logger.Info("Successfully migrated", zap.String("group", group.String()))
	return nil
}

func migrateDown(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error {
	if err := migrator.Lock(ctx); err != nil {
		return err
	}
	defer migrator.Unlock(ctx) //nolint:errcheck

	group, err := migrator.Rollback(ctx)
	if err != nil {
		return err
	}

	if group.IsZero() {
		logger.Info("No groups to roll back")
		return nil
	}

	logger.Info("Successfully rolled back", zap.String("group", group.String()))
	return nil
}

// withMigrator opens the database and a migrator around a migration action.
func withMigrator(
	fn func(ctx context.Context, migrator *migrate.Migrator, logger *zap.Logger) error,
) cli.ActionFunc {
	return func(ctx context.Context, _ *cli.Command) error {
		cfg, _, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logManager := telemetry.NewManager(telemetry.ServiceMigrate, MigrateLogDir, &cfg.Common.Debug)

		logger, dbLogger, err := logManager.GetLoggers()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		db := database.Open(&cfg.Common.PostgreSQL, dbLogger)
		defer func(db *bun.DB) {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", zap.Error(err))
			}
		}(db)

		return fn(ctx, database.NewMigrator(db), logger)
	}
}
