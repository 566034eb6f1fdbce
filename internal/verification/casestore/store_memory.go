package casestore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vetgate/internal/backend"
	"vetgate/pkg/platform/sentinel"
	"vetgate/pkg/requestcontext"
)

type memoryEntry struct {
	payload *backend.CasePayload
	savedAt time.Time
}

// MemoryStore is a process-local payload cache with TTL.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Find(ctx context.Context, subjectID string) (*backend.CasePayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[subjectID]
	if !ok {
		return nil, fmt.Errorf("case payload %s: %w", subjectID, sentinel.ErrNotFound)
	}
	cutoff := requestcontext.Now(ctx).Add(-s.ttl)
	if entry.savedAt.Before(cutoff) {
		return nil, fmt.Errorf("case payload %s expired: %w", subjectID, sentinel.ErrNotFound)
	}
	return entry.payload, nil
}

func (s *MemoryStore) Save(ctx context.Context, subjectID string, payload *backend.CasePayload) error {
	if payload == nil {
		return fmt.Errorf("case payload is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[subjectID] = memoryEntry{
		payload: payload,
		savedAt: requestcontext.Now(ctx),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, subjectID)
	return nil
}
