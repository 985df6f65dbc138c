// Package core defines the processed-id set abstraction shared by its
// backends. Depend on the facade in internal/procstore instead.
package core

import (
	"context"
	"sort"
)

// Set is the collection of message identifiers already committed to a
// ledger. Ids are added only on confirmed commit, never on preview.
type Set map[string]struct{}

// NewSet builds a set from ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	s.Add(ids...)
	return s
}

// Has reports membership.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts ids into the set.
func (s Set) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Sorted returns the ids in stable order for serialization.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Store persists the processed-id set. Load is fail-open: unreadable or
// corrupt stored state yields an empty set rather than an error, so one bad
// write can never lock the tracker up permanently; only transport failures
// surface as errors. Save replaces the whole persisted set.
type Store interface {
	Load(ctx context.Context) (Set, error)
	Save(ctx context.Context, s Set) error
}
