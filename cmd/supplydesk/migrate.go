package main

import (
	"os"

	"github.com/pr-poehali-dev/internal-employee-app/internal/database"
	"github.com/pr-poehali-dev/internal-employee-app/internal/logger"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLoggerWithWriter(cfg.Observability, nil, os.Stderr)

			if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
				log.Error().Err(err).Msg("migration failed")
				return err
			}
			return nil
		},
	}
}
