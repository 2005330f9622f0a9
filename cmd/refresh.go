package cmd

import (
	"context"

	"product-catalog/core/staging"
	"product-catalog/feature/product"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunRefresh bool

// refreshCmd runs one reconciliation pass outside the server.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reconcile staged SAP products into the product store",
	Long: `Runs one reconciliation pass against the configured staging store.

Use a shared staging driver (redis) or an enabled archive so the command sees the
batch staged by the server.

Examples:
  # Report what would change
  refresh --dry-run

  # Commit and publish
  refresh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := context.Background()
		if app.cfg.Staging.Driver != staging.DriverRedis {
			app.restore(ctx)
		}

		result, err := app.service.Refresh(ctx, product.RefreshOptions{DryRun: dryRunRefresh})
		if err != nil {
			return err
		}

		app.logger.Info("Refresh finished",
			zap.Bool("dry_run", result.DryRun),
			zap.Int("created", result.Created),
			zap.Int("updated", result.Updated),
			zap.Int("skipped", len(result.Skipped)),
			zap.Bool("published", result.Published),
		)
		for _, skip := range result.Skipped {
			app.logger.Info("Skipped", zap.String("sap_number", skip.Key), zap.String("reason", skip.Reason))
		}
		return nil
	},
}

func init() {
	refreshCmd.Flags().BoolVar(&dryRunRefresh, "dry-run", false, "Build the plan without committing or publishing")
	RootCmd.AddCommand(refreshCmd)
}
