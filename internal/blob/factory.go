package blob

import (
	"context"
	"fmt"
	"os"

	fsstore "reportledger/internal/infra/blob/fs"
	memorystore "reportledger/internal/infra/blob/memory"
	s3store "reportledger/internal/infra/blob/s3"
)

// Open selects a blob.Store implementation using environment variables.
//
//	REPORTLEDGER_BLOB_DRIVER: fs|s3|memory (default fs)
//	REPORTLEDGER_BLOB_FS_ROOT: directory root when driver=fs (default ./ledgerdata)
//	(S3 specific variables documented in the s3 driver)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("REPORTLEDGER_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("REPORTLEDGER_BLOB_FS_ROOT"))
	case DriverS3:
		return s3store.OpenFromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

// NewMemory returns an in-memory blob.Store suitable for tests.
func NewMemory() Store { return memorystore.New() }

// NewFilesystem constructs a filesystem-backed blob.Store rooted at path.
func NewFilesystem(root string) (Store, error) { return fsstore.New(root) }

// NewS3 constructs an S3-backed blob.Store from explicit configuration.
func NewS3(ctx context.Context, cfg s3store.Config) (Store, error) { return s3store.New(ctx, cfg) }

// S3Config re-exports the S3 driver configuration type.
type S3Config = s3store.Config
