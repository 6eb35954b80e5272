package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store in process memory, bounded to maxRecords
type MemoryStore struct {
	mu         sync.RWMutex
	records    []*Record // oldest first
	byID       map[uuid.UUID]*Record
	maxRecords int
}

// creates a new in-memory store; maxRecords <= 0 means unbounded
func NewMemoryStore(maxRecords int) *MemoryStore {
	return &MemoryStore{
		byID:       make(map[uuid.UUID]*Record),
		maxRecords: maxRecords,
	}
}

// stores a copy of the record, evicting the oldest when full
func (s *MemoryStore) Save(_ context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record

	if existing, ok := s.byID[cp.ID]; ok {
		*existing = cp
		return nil
	}

	s.records = append(s.records, &cp)
	s.byID[cp.ID] = &cp

	if s.maxRecords > 0 && len(s.records) > s.maxRecords {
		evicted := s.records[0]
		s.records = s.records[1:]
		delete(s.byID, evicted.ID)
	}

	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byID[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	cp := *record

	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, q Query) ([]*Record, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*Record, 0, len(s.records))

	for i := range s.records {
		idx := len(s.records) - 1 - i
		if q.Ascending {
			idx = i
		}

		if q.matches(s.records[idx]) {
			cp := *s.records[idx]
			matched = append(matched, &cp)
		}
	}

	return page(matched, q), len(matched), nil
}

// returns the number of stored records
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
