// Package mail defines the message-source and credential contracts the
// tracker consumes, plus an in-memory source for tests. The Microsoft Graph
// implementation lives in the graph subpackage.
package mail

import (
	"context"
	"sync"

	"reportledger/pkg/domain"
)

// Source lists messages from a mailbox. Implementations must honor ctx and
// complete or fail within a bounded request; the tracker never retries
// silently.
type Source interface {
	// ListInbox returns up to limit messages from the well-known inbox.
	ListInbox(ctx context.Context, limit int) ([]domain.Message, error)
	// ListFolder returns up to limit messages from the folder with the given
	// display name, matched case-insensitively.
	ListFolder(ctx context.Context, displayName string, limit int) ([]domain.Message, error)
}

// TokenStore scopes bearer-credential access to the operation using it.
// The identity provider's acquisition flow is out of scope; the tracker only
// requires that Get yields a currently valid credential.
type TokenStore interface {
	Get(ctx context.Context) (string, bool)
	Put(ctx context.Context, token string)
	Clear(ctx context.Context)
}

// MemoryTokenStore is a process-local TokenStore.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore returns a store pre-seeded with token ("" for empty).
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

// Get returns the held token.
func (s *MemoryTokenStore) Get(context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// Put replaces the held token.
func (s *MemoryTokenStore) Put(_ context.Context, token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear drops the held token, forcing the next operation to renew.
func (s *MemoryTokenStore) Clear(ctx context.Context) { s.Put(ctx, "") }

// MemorySource is an in-memory Source for tests.
type MemorySource struct {
	Messages []domain.Message
	Folders  map[string][]domain.Message
	Err      error
}

// ListInbox returns up to limit of the configured messages.
func (m *MemorySource) ListInbox(_ context.Context, limit int) ([]domain.Message, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return clip(m.Messages, limit), nil
}

// ListFolder returns up to limit messages from the named folder.
func (m *MemorySource) ListFolder(_ context.Context, displayName string, limit int) ([]domain.Message, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return clip(m.Folders[displayName], limit), nil
}

func clip(msgs []domain.Message, limit int) []domain.Message {
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out
}
