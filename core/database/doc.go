// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (local runs and tests) connections from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool limits and pings the server
// within the configured timeout. SQLite connections are limited to one open
// connection so in-memory databases survive across statements.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for both dialects. The integrity feature
// uses it to verify that the library table matches the GORM model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "library_entries")
package database
