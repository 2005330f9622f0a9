package cmd

import (
	"context"
	"fmt"

	"product-catalog/core/companies"
	"product-catalog/core/config"
	"product-catalog/core/database"
	"product-catalog/core/logger"
	"product-catalog/core/messaging"
	"product-catalog/core/staging"
	"product-catalog/core/storage"
	"product-catalog/feature/product"
	"product-catalog/feature/product/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application holds the wired dependencies shared by the commands.
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	rdb       *redis.Client
	publisher messaging.Publisher
	repo      *product.GormRepository
	service   *product.Service
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

// bootstrap connects every backend and builds the product service.
func bootstrap() (*application, error) {
	cfg, logg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	app := &application{cfg: cfg, logger: logg}

	app.db, err = database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	app.repo = product.NewRepository(app.db)
	logg.Info("Connected to product database", zap.String("driver", cfg.Database.Driver))

	var rdb redis.UniversalClient
	if cfg.Staging.Driver == staging.DriverRedis {
		app.rdb = staging.NewRedisClient(cfg.Redis)
		rdb = app.rdb
	}
	store, err := staging.NewStore(cfg.Staging, rdb, models.SapNumber)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.publisher, err = messaging.New(cfg.Messaging, logg)
	if err != nil {
		app.Close()
		return nil, err
	}

	var archive *product.Archive
	if cfg.Archive.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			app.Close()
			return nil, err
		}
		archive = product.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Archive.Prefix)
	}

	app.service = product.NewService(product.Deps{
		Repository: app.repo,
		Staging:    store,
		Companies:  companies.NewClient(cfg.Upstream),
		Publisher:  app.publisher,
		Archive:    archive,
		Topics: product.Topics{
			Updated:   messaging.Topic(cfg.Messaging, messaging.ProductUpdated),
			Refreshed: messaging.Topic(cfg.Messaging, messaging.ProductRefreshed),
		},
		Logger:         logg,
		PublishTimeout: cfg.Messaging.WriteTimeout,
	})
	return app, nil
}

// restore reloads the newest staging snapshot when the archive is enabled.
func (a *application) restore(ctx context.Context) {
	n, err := a.service.RestoreStaging(ctx)
	if err != nil {
		a.logger.Warn("Failed to restore staging batch", zap.Error(err))
		return
	}
	if n > 0 {
		a.logger.Info("Restored staged products", zap.Int("count", n))
	}
}

// Close releases the backends in reverse order.
func (a *application) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("Failed to close publisher", zap.Error(err))
		}
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}
