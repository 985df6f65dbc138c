// Package sqlite persists the processed-id set in a local SQLite database,
// for single-host deployments that keep the ledgers on the filesystem.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"reportledger/internal/procstore/core"
)

// Store implements core.Store on a SQLite table of committed message ids.
type Store struct {
	db *sql.DB
}

// NewStore opens (and initializes) the database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "reportledger.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS processed_messages (
		id TEXT PRIMARY KEY
	)`); err != nil {
		return nil, fmt.Errorf("create processed_messages table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Load reads all committed ids.
func (s *Store) Load(ctx context.Context) (core.Set, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM processed_messages`)
	if err != nil {
		return nil, fmt.Errorf("select processed ids: %w", err)
	}
	defer func() { _ = rows.Close() }()
	set := core.Set{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		set.Add(id)
	}
	return set, rows.Err()
}

// Save inserts any ids not yet present. Ids are never removed; the set only
// grows, matching the ledger's append-only presence semantics.
func (s *Store) Save(ctx context.Context, set core.Set) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, id := range set.Sorted() {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO processed_messages (id) VALUES (?)`, id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s: %w", id, err)
		}
	}
	return tx.Commit()
}
