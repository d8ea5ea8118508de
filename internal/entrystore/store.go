// Package entrystore persists integration entries in SQLite.
package entrystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgnsrekt/favicond/internal/entry"
	"github.com/dgnsrekt/favicond/internal/types"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id                TEXT PRIMARY KEY,
	title             TEXT NOT NULL UNIQUE,
	icon_path         TEXT NOT NULL,
	launch_icon_color TEXT NOT NULL DEFAULT '',
	created_at        INTEGER NOT NULL,
	updated_at        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_updated_at ON entries (updated_at);
`

// Store provides SQLite-backed persistence for entries.
type Store struct {
	sqlDB *sql.DB
}

var _ entry.Store = (*Store)(nil)

// Open opens the database at path, creating parent directories and the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("entry store: mkdir %s: %w", filepath.Dir(cleanPath), err)
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Insert(ctx context.Context, e entry.Entry) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO entries (id, title, icon_path, launch_icon_color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.IconPath, e.LaunchIconColor, e.CreatedAt.UnixNano(), e.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return mapWriteErr("insert entry", e.Title, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, e entry.Entry) error {
	if err := s.ready(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE entries SET title = ?, icon_path = ?, launch_icon_color = ?, updated_at = ?
		 WHERE id = ?`,
		e.Title, e.IconPath, e.LaunchIconColor, e.UpdatedAt.UnixNano(), e.ID,
	)
	if err != nil {
		return mapWriteErr("update entry", e.Title, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return types.NewError(types.CodeStorage, "update entry", err)
	}
	if n == 0 {
		return notFound(e.ID)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (entry.Entry, error) {
	if err := s.ready(); err != nil {
		return entry.Entry{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, title, icon_path, launch_icon_color, created_at, updated_at
		 FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Entry{}, notFound(id)
	}
	if err != nil {
		return entry.Entry{}, types.NewError(types.CodeStorage, "get entry", err)
	}
	return e, nil
}

// List returns all entries, most recently updated first.
func (s *Store) List(ctx context.Context) ([]entry.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, title, icon_path, launch_icon_color, created_at, updated_at
		 FROM entries ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, types.NewError(types.CodeStorage, "list entries", err)
	}
	defer rows.Close()

	out := make([]entry.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, types.NewError(types.CodeStorage, "scan entry", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewError(types.CodeStorage, "list entries", err)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return types.NewError(types.CodeStorage, "delete entry", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *Store) FindByTitle(ctx context.Context, title string) (entry.Entry, bool, error) {
	if err := s.ready(); err != nil {
		return entry.Entry{}, false, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, title, icon_path, launch_icon_color, created_at, updated_at
		 FROM entries WHERE title = ?`, title)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Entry{}, false, nil
	}
	if err != nil {
		return entry.Entry{}, false, types.NewError(types.CodeStorage, "find entry by title", err)
	}
	return e, true, nil
}

func (s *Store) ready() error {
	if s == nil || s.sqlDB == nil {
		return types.NewError(types.CodeStoreUnavailable, "storage is not configured", nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (entry.Entry, error) {
	var e entry.Entry
	var createdAt, updatedAt int64
	if err := row.Scan(&e.ID, &e.Title, &e.IconPath, &e.LaunchIconColor, &createdAt, &updatedAt); err != nil {
		return entry.Entry{}, err
	}
	e.CreatedAt = time.Unix(0, createdAt).UTC()
	e.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return e, nil
}

func notFound(id string) error {
	return types.NewError(types.CodeEntryNotFound, "entry not found: "+id, nil)
}

func mapWriteErr(op, title string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return types.NewError(types.CodeDuplicate, "an entry titled "+title+" already exists", err)
	}
	return types.NewError(types.CodeStorage, op, err)
}
