// Package database handles database connections and schema inspection.
//
// It wraps GORM to open the match record store. Two drivers are supported: mysql
// for shared deployments and sqlite for local runs and tests (use ":memory:" as
// the name for a throwaway database).
//
// # Schema Inspection
//
// TableColumns reads the live column list of a table (PRAGMA table_info on
// sqlite, SHOW COLUMNS on mysql). The matches feature uses it to verify that an
// existing table still carries every column the exporter writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "match_records", expected)
package database
