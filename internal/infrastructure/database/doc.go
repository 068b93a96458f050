// Package database provides SQLite connectivity for homesim's durable state.
//
// This package manages:
//   - Opening the state file with WAL mode and a busy timeout
//   - Versioned schema migrations read from any fs.FS
//   - Connection lifecycle and health checks
//
// Usage:
//
//	db, err := database.Open(ctx, cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx, migrations.FS, "."); err != nil {
//	    return err
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql with an
// optional matching .down.sql. Migrations are additive: new columns must be
// nullable or carry a default.
package database
