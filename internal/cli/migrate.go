package cli

import (
	"context"

	"github.com/paramreg/registry/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables or Mongo indexes",
	Long:  "Runs GORM AutoMigrate for postgres and sqlite, or creates the collection indexes for mongo",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		_, store, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer store.Close(context.Background())

		if err := store.Migrate(ctx); err != nil {
			logger.GetLogger().Error("Migration failed",
				zap.String("driver", store.Driver),
				zap.Error(err),
			)
			return err
		}

		logger.GetLogger().Info("Database migrated successfully",
			zap.String("driver", store.Driver),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
