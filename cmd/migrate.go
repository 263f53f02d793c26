package cmd

import (
	"fmt"

	"game-tracker/core/database"
	"game-tracker/feature/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the library schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the library database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		db, err := database.Connect(a.cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		if err := library.NewStore(db).Migrate(); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}

		a.logger.Info("Schema migrated", zap.String("driver", a.cfg.Database.Driver), zap.String("database", a.cfg.Database.Name))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
