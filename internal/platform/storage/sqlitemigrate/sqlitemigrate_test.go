package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyMigrationsOnce(t *testing.T) {
	sqlDB := openTestDB(t)
	migrationFS := fstest.MapFS{
		"schema/001_init.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
CREATE TABLE saves (slot TEXT PRIMARY KEY);
-- +migrate Down
DROP TABLE saves;
`)},
	}

	if err := ApplyMigrations(sqlDB, migrationFS, "schema"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// Re-applying must be a no-op.
	if err := ApplyMigrations(sqlDB, migrationFS, "schema"); err != nil {
		t.Fatalf("re-apply: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", count)
	}
	if _, err := sqlDB.Exec("INSERT INTO saves (slot) VALUES ('slot-1')"); err != nil {
		t.Fatalf("expected saves table to exist: %v", err)
	}
}

func TestApplyMigrationsOrder(t *testing.T) {
	sqlDB := openTestDB(t)
	migrationFS := fstest.MapFS{
		"schema/002_add_column.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
ALTER TABLE saves ADD COLUMN chapter INTEGER NOT NULL DEFAULT 1;
`)},
		"schema/001_init.sql": &fstest.MapFile{Data: []byte(`
-- +migrate Up
CREATE TABLE saves (slot TEXT PRIMARY KEY);
`)},
	}

	if err := ApplyMigrations(sqlDB, migrationFS, "schema"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := sqlDB.Exec("INSERT INTO saves (slot, chapter) VALUES ('slot-1', 3)"); err != nil {
		t.Fatalf("expected chapter column: %v", err)
	}
}

func TestExtractUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "no markers returns all",
			content: "CREATE TABLE a (x);",
			want:    "CREATE TABLE a (x);",
		},
		{
			name:    "up only",
			content: "-- +migrate Up\nCREATE TABLE a (x);",
			want:    "\nCREATE TABLE a (x);",
		},
		{
			name:    "up and down",
			content: "-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;",
			want:    "\nCREATE TABLE a (x);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractUpMigration(tt.content); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
