package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"worklog/internal/config"
	"worklog/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending archive migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.MySQL.DSN == "" {
			return errors.New("MYSQL_DSN is not set")
		}
		return migrate.Run(cmd.Context(), cfg.MySQL.DSN, logger)
	},
}
