package main

import (
	"github.com/spf13/cobra"

	"github.com/sayan-tan/Unicorn/internal/config"
	"github.com/sayan-tan/Unicorn/internal/logging"
	"github.com/sayan-tan/Unicorn/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: "migrate"})
		if err != nil {
			return err
		}

		cfg, err := config.LoadRequireDB()
		if err != nil {
			return err
		}

		if err := store.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}

		logger.Info("migrations applied successfully")
		return nil
	},
}
