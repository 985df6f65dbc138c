// Package procstore re-exports the processed-id set abstraction and selects
// a backend. Only this package imports the infra implementations.
package procstore

import (
	"context"
	"fmt"
	"os"

	"reportledger/internal/blob"
	blobjsonstore "reportledger/internal/infra/procstore/blobjson"
	postgresstore "reportledger/internal/infra/procstore/postgres"
	sqlitestore "reportledger/internal/infra/procstore/sqlite"
	"reportledger/internal/procstore/core"
)

type (
	// Set is the committed message-id set.
	Set = core.Set
	// Store persists the set between operations.
	Store = core.Store
)

// NewSet builds a set from ids.
func NewSet(ids ...string) Set { return core.NewSet(ids...) }

// Open selects a processed-id store using environment variables.
//
//	REPORTLEDGER_PROCSTORE_DRIVER: blob|sqlite|postgres (default blob)
//	REPORTLEDGER_PROCSTORE_NAME: blob document name (default processed_messages.json)
//	REPORTLEDGER_PROCSTORE_SQLITE_PATH: database path when driver=sqlite
//	REPORTLEDGER_PROCSTORE_POSTGRES_DSN: connection string when driver=postgres
//
// The blob driver shares the drive the ledgers live on, matching prior runs.
func Open(ctx context.Context, drive blob.Drive) (Store, error) {
	driver := os.Getenv("REPORTLEDGER_PROCSTORE_DRIVER")
	if driver == "" {
		driver = "blob"
	}
	switch driver {
	case "blob":
		return NewBlobJSON(drive, os.Getenv("REPORTLEDGER_PROCSTORE_NAME")), nil
	case "sqlite":
		return sqlitestore.NewStore(os.Getenv("REPORTLEDGER_PROCSTORE_SQLITE_PATH"))
	case "postgres":
		return postgresstore.NewStore(ctx, os.Getenv("REPORTLEDGER_PROCSTORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown procstore driver %s", driver)
	}
}

// NewBlobJSON returns the JSON-document store over the given drive.
func NewBlobJSON(drive blob.Drive, name string) Store { return blobjsonstore.New(drive, name) }

// NewSQLite returns the SQLite-backed store at path.
func NewSQLite(path string) (Store, error) { return sqlitestore.NewStore(path) }

// NewPostgres returns the Postgres-backed store for dsn.
func NewPostgres(ctx context.Context, dsn string) (Store, error) {
	return postgresstore.NewStore(ctx, dsn)
}
