package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/aikira.quest/internal/engine/progress"
	sqlitemigrate "github.com/louisbranch/aikira.quest/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/aikira.quest/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed save slot persistence.
type Store struct {
	sqlDB *sql.DB
	// now stamps updated_at; overridable in tests.
	now func() time.Time
}

// Open opens a save store and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts a slot's progress.
func (s *Store) Save(ctx context.Context, slot string, p progress.Progress) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return fmt.Errorf("slot is required")
	}

	solved, err := json.Marshal(p.Solved)
	if err != nil {
		return fmt.Errorf("encode solved flags: %w", err)
	}
	clues := p.Clues
	if clues == nil {
		clues = []string{}
	}
	clueList, err := json.Marshal(clues)
	if err != nil {
		return fmt.Errorf("encode clues: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO saves (
	slot,
	chapter,
	solved,
	clues,
	byte_interactions,
	updated_at
) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
	chapter = excluded.chapter,
	solved = excluded.solved,
	clues = excluded.clues,
	byte_interactions = excluded.byte_interactions,
	updated_at = excluded.updated_at
`,
		slot,
		p.Chapter,
		string(solved),
		string(clueList),
		p.ByteInteractions,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	return nil
}

// Load reads a slot's progress. The second return is false when the slot was
// never saved.
func (s *Store) Load(ctx context.Context, slot string) (progress.Progress, bool, error) {
	if err := ctx.Err(); err != nil {
		return progress.Progress{}, false, err
	}
	if s == nil || s.sqlDB == nil {
		return progress.Progress{}, false, fmt.Errorf("storage is not configured")
	}
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return progress.Progress{}, false, fmt.Errorf("slot is required")
	}

	var p progress.Progress
	var solved, clues string
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT chapter, solved, clues, byte_interactions
FROM saves
WHERE slot = ?
`, slot).Scan(&p.Chapter, &solved, &clues, &p.ByteInteractions)
	if err == sql.ErrNoRows {
		return progress.Progress{}, false, nil
	}
	if err != nil {
		return progress.Progress{}, false, fmt.Errorf("load slot: %w", err)
	}

	if err := json.Unmarshal([]byte(solved), &p.Solved); err != nil {
		return progress.Progress{}, false, fmt.Errorf("decode solved flags: %w", err)
	}
	if err := json.Unmarshal([]byte(clues), &p.Clues); err != nil {
		return progress.Progress{}, false, fmt.Errorf("decode clues: %w", err)
	}
	return p, true, nil
}

// Delete removes a slot. Deleting a missing slot is not an error.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return fmt.Errorf("slot is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}
