package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx, rt.config, rt.logger)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.close()

		if err := st.migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		rt.logger.Info("Schema is up to date", zap.String("driver", rt.config.Database.Driver))
		return nil
	},
}
