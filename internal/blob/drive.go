package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
)

// Drive is the named-file contract the ledger workflows run against: exact
// case-insensitive name lookup, whole-file read, whole-file replace, and
// create. A remote drive service satisfies it directly; NewDrive adapts any
// blob.Store. Name lookup is never fuzzy.
type Drive interface {
	// FindByName returns an opaque handle for the file with the given name,
	// matched case-insensitively but otherwise exactly. ok is false when no
	// such file exists; that is not an error.
	FindByName(ctx context.Context, name string) (handle string, ok bool, err error)
	// Read returns the full file contents.
	Read(ctx context.Context, handle string) ([]byte, error)
	// Write replaces the full file contents.
	Write(ctx context.Context, handle string, data []byte) error
	// Create stores a new file under name and returns its handle.
	Create(ctx context.Context, name string, data []byte) (string, error)
}

type storeDrive struct {
	store Store
}

// NewDrive adapts a blob.Store to the Drive contract. Handles are blob keys.
func NewDrive(s Store) Drive { return storeDrive{store: s} }

func (d storeDrive) FindByName(ctx context.Context, name string) (string, bool, error) {
	infos, err := d.store.List(ctx, "")
	if err != nil {
		return "", false, fmt.Errorf("list blobs: %w", err)
	}
	for _, info := range infos {
		if strings.EqualFold(info.Key, name) {
			return info.Key, true, nil
		}
	}
	return "", false, nil
}

func (d storeDrive) Read(ctx context.Context, handle string) ([]byte, error) {
	_, rc, err := d.store.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func (d storeDrive) Write(ctx context.Context, handle string, data []byte) error {
	_, err := d.store.Write(ctx, handle, bytes.NewReader(data), PutOptions{})
	return err
}

func (d storeDrive) Create(ctx context.Context, name string, data []byte) (string, error) {
	info, err := d.store.Create(ctx, name, bytes.NewReader(data), PutOptions{})
	if err != nil {
		return "", err
	}
	return info.Key, nil
}
