package cmd

import (
	"context"

	"product-catalog/core/database"
	"product-catalog/feature/product"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates the product tables and seeds the status catalog.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the product tables and seed product statuses",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		if err := product.NewRepository(db).Migrate(context.Background()); err != nil {
			return err
		}

		for _, table := range []string{"product_statuses", "products", "product_images"} {
			columns, err := database.GetTableColumns(db, table)
			if err != nil {
				return err
			}
			logg.Info("Table ready", zap.String("table", table), zap.Int("columns", len(columns)))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
