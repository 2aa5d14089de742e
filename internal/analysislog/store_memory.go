package analysislog

import (
	"context"
	"sync"
)

// MemoryStore keeps records in memory. Used in dev mode and tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record

	// FailWith, when set, makes every Insert fail. Test hook.
	FailWith error
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert appends the record.
func (s *MemoryStore) Insert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.records = append(s.records, rec)
	return nil
}

// Records returns a copy of everything inserted so far.
func (s *MemoryStore) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

var _ Sink = (*MemoryStore)(nil)
