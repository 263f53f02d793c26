package cmd

import (
	"context"
	"fmt"
	"time"

	"game-tracker/core/database"
	"game-tracker/core/logger"
	"game-tracker/core/storage"
	"game-tracker/feature/catalog"
	"game-tracker/feature/library"
	"game-tracker/feature/sources"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the dependencies shared by the server and the CLI commands.
type app struct {
	cfg     *Config
	logger  *zap.Logger
	db      *gorm.DB
	storage storage.Client
	store   *library.Store
	service *library.Service
}

// loadApp reads the configuration and builds the logger.
func loadApp() (*app, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &app{cfg: cfg, logger: logg}, nil
}

// connect opens the database and builds the library service.
// The snapshot archiver is attached only when storage is reachable.
func (a *app) connect(ctx context.Context) error {
	db, err := database.Connect(a.cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection required: %w", err)
	}
	a.db = db
	a.store = library.NewStore(db)

	var archiver *library.SnapshotArchiver
	if a.cfg.Snapshot.Enabled {
		client, err := a.openStorage(ctx)
		if err != nil {
			a.logger.Warn("Snapshot archiving disabled", zap.Error(err))
		} else {
			a.storage = client
			archiver = library.NewSnapshotArchiver(client, a.cfg.Storage.Bucket, a.cfg.Snapshot, a.logger)
		}
	}

	lookup := catalog.NewCachedClient(
		catalog.NewClient(a.cfg.Catalog),
		time.Duration(a.cfg.Catalog.CacheTTLSeconds)*time.Second,
	)
	registry := sources.NewRegistry(a.cfg.Sources, a.logger, nil)

	a.service = library.NewService(a.store, registry, lookup, archiver, a.cfg.Sync, a.logger)
	return nil
}

// openStorage creates the storage client and the bucket when it is missing.
func (a *app) openStorage(ctx context.Context) (storage.Client, error) {
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	bucket := a.cfg.Storage.Bucket
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: a.cfg.Storage.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		a.logger.Info("Created snapshot bucket", zap.String("bucket", bucket))
	}
	return client, nil
}
