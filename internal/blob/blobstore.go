// Package blob re-exports the storage abstractions and wraps the backend
// drivers. Other packages depend on blob.Store / blob.Drive; only this
// package imports the infra implementations.
package blob

import (
	"reportledger/internal/blob/core"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// PutOptions configures a blob write.
	PutOptions = core.PutOptions
	// Info describes stored blob metadata.
	Info = core.Info
	// Store is the interface for blob storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
)

// ErrNotFound is wrapped by backends when a key does not exist.
var ErrNotFound = core.ErrNotFound
