package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/x31a/acrobits-websvc/internal/backend/postgres"
	"github.com/x31a/acrobits-websvc/internal/config"
	"github.com/x31a/acrobits-websvc/internal/infra"
	"github.com/x31a/acrobits-websvc/internal/logging"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables used by the postgres backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Backend != config.BackendPostgres {
				return fmt.Errorf("migrate needs the %s backend, configured backend is %s", config.BackendPostgres, cfg.Backend)
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			db, err := infra.NewPostgresPool(cmd.Context(), cfg.DatabaseURL, cfg.AppName)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.New(db).Migrate(cmd.Context()); err != nil {
				return err
			}
			logger.Info("schema applied")
			return nil
		},
	}
}
