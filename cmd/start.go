package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"product-catalog/core/loader"
	"product-catalog/core/logger"
	"product-catalog/core/metrics"
	"product-catalog/core/middleware/auth"
	"product-catalog/core/middleware/rayid"
	"product-catalog/core/response"
	"product-catalog/feature/product"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the product catalog server",
	Long:  `Starts the HTTP server, restores the staging batch and runs the optional refresh job.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer app.Close()

		cfg := app.cfg
		logg := app.logger
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app.restore(ctx)

		server := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			ErrorHandler:          response.ErrorHandler(logg),
		})

		// RayID first so every later log line carries it.
		server.Use(rayid.New())
		server.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		server.Use(metrics.Middleware())

		server.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		server.Get("/metrics", metrics.Handler())

		api := server.Group(cfg.Server.RoutePrefix(), auth.New(auth.Config{Secret: cfg.Auth.Secret}))

		mgr := loader.NewManager(logg)
		mgr.Register(product.NewFeature(app.service, logg))
		if err := mgr.LoadAll(api); err != nil {
			return err
		}

		go product.NewScheduler(app.service, cfg.Refresh.Interval, logg).Start(ctx)

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("prefix", cfg.Server.RoutePrefix()))
			if err := server.Listen(":" + cfg.Server.Port); err != nil {
				logg.Error("Server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		return server.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
