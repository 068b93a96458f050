// Package store persists the state of a simulated home.
//
// State is kept as three JSON/text records in a key-value backend:
//
//	smartHome.components   JSON array of component info records
//	smartHome.counter      last issued component ID, decimal string
//	smartHome.eventLog     JSON array of events, oldest first
//
// Two backends are provided: SQLiteKV over the kv_store table and MemoryKV
// for ephemeral runs and tests.
//
// # Usage
//
//	db, err := database.Open(ctx, cfg.Database)
//	if err != nil {
//	    return err
//	}
//	if err := db.Migrate(ctx, migrations.FS, migrations.Dir); err != nil {
//	    return err
//	}
//	st := store.New(store.NewSQLiteKV(db.DB), cfg.Storage.Namespace)
//
// Corrupt records never fail a load; they are read as empty so a damaged
// state file degrades to a fresh home.
package store
