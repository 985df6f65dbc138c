// Package postgres persists the processed-id set in Postgres, for
// deployments where several operators share one tracker database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"reportledger/internal/procstore/core"
)

const defaultDSN = "postgres://localhost/reportledger?sslmode=disable"

// Store implements core.Store on a Postgres table of committed message ids.
type Store struct {
	db *sql.DB
}

// NewStore opens a connection using dsn (falls back to a local default) and
// ensures the table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS processed_messages (
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

// Save inserts any ids not yet present.
func (s *Store) Save(ctx context.Context, set core.Set) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, id := range set.Sorted() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO processed_messages (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s: %w", id, err)
		}
	}
	return tx.Commit()
}
