// Package database handles database connections and schema inspection for the
// run history.
//
// It wraps GORM and configures either MySQL (shared history across machines)
// or SQLite (a local file, the default) from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver and pings it within the configured
// timeout. The history database is optional: callers treat a failure as
// "history disabled" where that makes sense.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for both dialects. The history
// feature uses it to verify that its tables carry the expected columns.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "run_records")
package database
