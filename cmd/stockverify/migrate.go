package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/platform/config"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/repositories/database/pgsql"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/repositories/memory"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/pkg/database"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}

	for _, direction := range []database.MigrationDirection{database.MigrateUp, database.MigrateDown} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(direction),
			Short: fmt.Sprintf("Run migrations %s", direction),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadPostgresConfig()
				if err != nil {
					return err
				}
				logger := newLogger(cfg.LogLevel)
				return database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, direction)
			},
		})
	}

	return cmd
}

func seedCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-catalog <file.json>",
		Short: "Upsert catalog items from a JSON file into postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPostgresConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)

			items, err := memory.LoadCatalogFile(args[0])
			if err != nil {
				return err
			}

			dbPool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, true)
			if err != nil {
				return fmt.Errorf("failed to initialize database pool: %w", err)
			}
			defer database.ClosePgxPool(dbPool)

			if err := pgsql.NewCatalogRepository(dbPool).UpsertCatalogItems(cmd.Context(), items); err != nil {
				return err
			}
			logger.Info("Catalog seeded", slog.Int("items", len(items)), slog.String("file", args[0]))
			return nil
		},
	}
}

func loadPostgresConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.StorageDriver != config.StorageDriverPostgres {
		return nil, fmt.Errorf("this command needs STORAGE_DRIVER=%s", config.StorageDriverPostgres)
	}
	return cfg, nil
}
