package repo

import (
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-study-session/internal/domain"
)

func openFileDB(t *testing.T, opts ...Option) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "studium.db"), append(opts, WithSilentLogger())...)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestOpenSQLite_MissingDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "studium.db")
	db, err := OpenSQLite(path)
	if err == nil || db != nil {
		t.Fatalf("want error for %q, got db=%v err=%v", path, db, err)
	}
}

func TestOpenSQLite_Pragmas(t *testing.T) {
	db := openFileDB(t)

	var mode string
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&mode); err != nil || !strings.EqualFold(mode, "wal") {
		t.Fatalf("journal_mode=%q err=%v", mode, err)
	}
	for pragma, want := range map[string]int{
		"synchronous":  1, // NORMAL
		"foreign_keys": 1,
		"busy_timeout": 5000,
	} {
		var got int
		if err := db.Raw("PRAGMA " + pragma + ";").Row().Scan(&got); err != nil {
			t.Fatalf("PRAGMA %s: %v", pragma, err)
		}
		if got != want {
			t.Errorf("PRAGMA %s = %d, want %d", pragma, got, want)
		}
	}

	sqlDB, _ := db.DB()
	if n := sqlDB.Stats().MaxOpenConnections; n != 10 {
		t.Fatalf("MaxOpenConnections=%d", n)
	}
}

func TestAutoMigrate_CreatesAccountAndIdempotencyTables(t *testing.T) {
	db := openFileDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, model := range []any{&domain.Account{}, &domain.Idempotency{}} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("missing table for %T", model)
		}
	}
	// Second run is a no-op.
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate again: %v", err)
	}
}

func TestOpenSQLite_WithTracing(t *testing.T) {
	db := openFileDB(t, WithTracing(true))
	if len(db.Config.Plugins) == 0 {
		t.Fatal("tracing plugin not registered")
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate with tracing: %v", err)
	}
}
