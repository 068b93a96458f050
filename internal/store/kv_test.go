package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nerrad567/homesim/internal/infrastructure/database"
	"github.com/nerrad567/homesim/migrations"
)

// openTestKV opens a migrated SQLite database in a temp dir.
func openTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{
		Path:        filepath.Join(t.TempDir(), "homesim.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(ctx, migrations.FS, migrations.Dir); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewSQLiteKV(db.DB)
}

func TestKVBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) KV{
		"sqlite": func(t *testing.T) KV { return openTestKV(t) },
		"memory": func(*testing.T) KV { return NewMemoryKV() },
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			ctx := context.Background()

			if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrKeyNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrKeyNotFound", err)
			}

			if err := kv.Set(ctx, "smartHome.counter", "3"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := kv.Set(ctx, "smartHome.counter", "4"); err != nil {
				t.Fatalf("Set() overwrite error = %v", err)
			}
			got, err := kv.Get(ctx, "smartHome.counter")
			if err != nil || got != "4" {
				t.Errorf("Get() = %q, %v, want 4", got, err)
			}

			if err := kv.Delete(ctx, "smartHome.counter"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := kv.Get(ctx, "smartHome.counter"); !errors.Is(err, ErrKeyNotFound) {
				t.Errorf("Get after Delete error = %v, want ErrKeyNotFound", err)
			}
			if err := kv.Delete(ctx, "smartHome.counter"); err != nil {
				t.Errorf("Delete(missing) error = %v", err)
			}
		})
	}
}

func TestSQLiteKV_UnmigratedTable(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{Path: filepath.Join(t.TempDir(), "bare.db"), BusyTimeout: 1})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	defer db.Close() //nolint:errcheck // Test cleanup

	kv := NewSQLiteKV(db.DB)
	if err := kv.Set(ctx, "k", "v"); err == nil {
		t.Error("Set() without kv_store table should fail")
	}
	if _, err := kv.Get(ctx, "k"); err == nil || errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get() without kv_store table error = %v, want query error", err)
	}
}
