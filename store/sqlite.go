package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clementus360/daily-tracker/types"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		name       TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS archives (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		document   TEXT NOT NULL
	)`,
}

// SQLite implements Store and Archiver on a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: an in-memory database is private to its connection,
	// and the tracker has a single writer anyway.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}

	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, name string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE name = ?`, name).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", name, types.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return []byte(value), nil
}

func (s *SQLite) Set(ctx context.Context, name string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, string(value), time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (s *SQLite) Remove(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE name = ?`, name); err != nil {
		return fmt.Errorf("removing %s: %w", name, err)
	}
	return nil
}

func (s *SQLite) SaveArchive(ctx context.Context, document []byte, at time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO archives (created_at, document) VALUES (?, ?)`,
		at.UTC().Format(timeLayout), string(document))
	if err != nil {
		return 0, fmt.Errorf("inserting archive: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading archive id: %w", err)
	}
	return id, nil
}

func (s *SQLite) ListArchives(ctx context.Context) ([]ArchiveEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, length(CAST(document AS BLOB)) FROM archives ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing archives: %w", err)
	}
	defer rows.Close()

	var out []ArchiveEntry
	for rows.Next() {
		var (
			e       ArchiveEntry
			created string
		)
		if err := rows.Scan(&e.ID, &created, &e.Size); err != nil {
			return nil, fmt.Errorf("scanning archive: %w", err)
		}
		if t, err := time.Parse(timeLayout, created); err == nil {
			e.CreatedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLite) LoadArchive(ctx context.Context, id int64) ([]byte, error) {
	var document string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM archives WHERE id = ?`, id).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("archive %d: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("reading archive %d: %w", id, err)
	}
	return []byte(document), nil
}

var (
	_ Store    = (*SQLite)(nil)
	_ Archiver = (*SQLite)(nil)
	_ Store    = (*Memory)(nil)
	_ Archiver = (*Memory)(nil)
)
