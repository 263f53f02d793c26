package cmd

import (
	"game-tracker/core/config"
	"game-tracker/core/database"
	"game-tracker/core/logger"
	"game-tracker/core/server"
	"game-tracker/core/storage"
	"game-tracker/feature/catalog"
	"game-tracker/feature/library"
	"game-tracker/feature/library/sync"
	"game-tracker/feature/sources"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used for library snapshots.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Catalog holds configuration for the game metadata catalog service.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Sources holds configuration for the platform library adapters.
	Sources sources.Config `mapstructure:"sources"`
	// Sync holds batching and matching settings for library synchronization.
	Sync sync.Config `mapstructure:"sync"`
	// Snapshot controls archiving of raw platform libraries.
	Snapshot library.SnapshotConfig `mapstructure:"snapshot"`
}

// loadConfig reads every section from the environment and the .env file in path.
func loadConfig(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
