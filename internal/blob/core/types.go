// Package core defines the storage abstractions shared by the blob backends.
// Higher layers depend on the facade in internal/blob; only the facade and
// the infra drivers may import this package directly.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	// DriverFilesystem is the local filesystem backend (default, dev).
	DriverFilesystem Driver = "fs"
	// DriverS3 is the S3 / MinIO compatible backend.
	DriverS3 Driver = "s3"
	// DriverMemory is the in-memory backend used in tests.
	DriverMemory Driver = "memory"
)

// PutOptions specifies optional parameters for Create and Write.
type PutOptions struct {
	ContentType string            // MIME type, optional
	Metadata    map[string]string // user metadata, small flat key-value
}

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is a thin S3-like abstraction over blob backends. The ledger
// workflows fetch, rewrite, and replace whole files, so the surface stays
// deliberately small: create-only Put semantics plus an overwriting Write.
type Store interface {
	// Create stores a new blob at key and fails if the key already exists.
	Create(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Write stores the blob at key, replacing any existing content.
	Write(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Get retrieves contents and metadata. Missing keys wrap ErrNotFound.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// Head returns metadata only.
	Head(ctx context.Context, key string) (Info, error)
	// Delete removes a blob. Returns (false, nil) if not found.
	Delete(ctx context.Context, key string) (bool, error)
	// List returns blobs whose key has the prefix, ordered by key ascending.
	List(ctx context.Context, prefix string) ([]Info, error)
	// Driver returns the configured backend driver identifier.
	Driver() Driver
}

// ErrNotFound is wrapped by backends when a key does not exist.
var ErrNotFound = errors.New("blob not found")

// CloneMetadata copies a metadata map so callers cannot alias stored state.
func CloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
