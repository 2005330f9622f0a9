// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL connections (production) or
// SQLite (local runs and tests) from the application's configuration.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies pool settings and verifies
// the connection with a bounded ping.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table through the GORM migrator. The migrate
// command uses it to report the resulting product schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "products")
package database
