// Package blobjson persists the processed-id set as a small JSON document in
// blob storage, alongside the ledger files it guards. This is the on-disk
// contract from prior runs:
//
//	{ "processed_message_ids": [ ... ] }
package blobjson

import (
	"context"
	"encoding/json"
	"fmt"

	"reportledger/internal/blob"
	"reportledger/internal/procstore/core"
)

// DefaultName is the well-known document name in the drive root.
const DefaultName = "processed_messages.json"

type document struct {
	ProcessedMessageIDs []string `json:"processed_message_ids"`
}

// Store implements core.Store over a blob.Drive.
type Store struct {
	drive blob.Drive
	name  string
}

// New returns a store persisting under name (DefaultName when empty).
func New(drive blob.Drive, name string) *Store {
	if name == "" {
		name = DefaultName
	}
	return &Store{drive: drive, name: name}
}

// Load reads the persisted set, creating an empty document when absent.
// A document that exists but does not parse is treated as empty.
func (s *Store) Load(ctx context.Context) (core.Set, error) {
	handle, ok, err := s.drive.FindByName(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.name, err)
	}
	if !ok {
		if _, err := s.drive.Create(ctx, s.name, mustMarshal(document{ProcessedMessageIDs: []string{}})); err != nil {
			return nil, fmt.Errorf("create %s: %w", s.name, err)
		}
		return core.Set{}, nil
	}
	b, err := s.drive.Read(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.name, err)
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		// fail-open: corrupt auxiliary state loads as empty
		return core.Set{}, nil
	}
	return core.NewSet(doc.ProcessedMessageIDs...), nil
}

// Save replaces the persisted document with the full set.
func (s *Store) Save(ctx context.Context, set core.Set) error {
	data, err := json.MarshalIndent(document{ProcessedMessageIDs: set.Sorted()}, "", "  ")
	if err != nil {
		return err
	}
	handle, ok, err := s.drive.FindByName(ctx, s.name)
	if err != nil {
		return fmt.Errorf("find %s: %w", s.name, err)
	}
	if !ok {
		_, err := s.drive.Create(ctx, s.name, data)
		return err
	}
	return s.drive.Write(ctx, handle, data)
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err) // static shape, cannot fail
	}
	return b
}
