// Package manifest records what the last export wrote so the next one only
// touches files whose content changed.
package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one output file of a previous build.
type Entry struct {
	Path    string
	Hash    string
	Size    int64
	BuiltAt time.Time
}

type Manifest struct {
	db *sql.DB
}

// Open opens (creating if needed) the manifest database at path.
func Open(ctx context.Context, path string) (*Manifest, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create manifest dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	// A single connection serialises writers from the export workers.
	db.SetMaxOpenConns(1)

	m := &Manifest{db: db}
	if err := m.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func (m *Manifest) migrate(ctx context.Context) error {
	createOutputs := `
	CREATE TABLE IF NOT EXISTS outputs (
		path TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		built_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := m.db.ExecContext(ctx, createOutputs); err != nil {
		return fmt.Errorf("create outputs table: %w", err)
	}

	// Manifests written before sizes were tracked lack the column.
	var columnExists int
	checkColumn := `SELECT COUNT(*) FROM pragma_table_info('outputs') WHERE name='size'`
	if err := m.db.QueryRowContext(ctx, checkColumn).Scan(&columnExists); err != nil {
		return fmt.Errorf("inspect outputs table: %w", err)
	}
	if columnExists == 0 {
		if _, err := m.db.ExecContext(ctx, `ALTER TABLE outputs ADD COLUMN size INTEGER NOT NULL DEFAULT 0`); err != nil {
			return fmt.Errorf("add size column: %w", err)
		}
	}
	return nil
}

func (m *Manifest) Close() error {
	return m.db.Close()
}

// Unchanged reports whether path was last built with the same hash.
func (m *Manifest) Unchanged(ctx context.Context, path, hash string) (bool, error) {
	var stored string
	err := m.db.QueryRowContext(ctx, `SELECT hash FROM outputs WHERE path = ?`, path).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", path, err)
	}
	return stored == hash, nil
}

// Record stores the hash of a freshly written output.
func (m *Manifest) Record(ctx context.Context, path, hash string, size int64) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO outputs (path, hash, size, built_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, size = excluded.size, built_at = excluded.built_at
	`, path, hash, size, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record %s: %w", path, err)
	}
	return nil
}

// Entries lists every recorded output ordered by path.
func (m *Manifest) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT path, hash, size, built_at FROM outputs ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Hash, &e.Size, &e.BuiltAt); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove forgets the given outputs.
func (m *Manifest) Remove(ctx context.Context, paths ...string) (int64, error) {
	var removed int64
	for _, p := range paths {
		result, err := m.db.ExecContext(ctx, `DELETE FROM outputs WHERE path = ?`, p)
		if err != nil {
			return removed, fmt.Errorf("remove %s: %w", p, err)
		}
		n, _ := result.RowsAffected()
		removed += n
	}
	return removed, nil
}
