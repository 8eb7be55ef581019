package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/profile"
)

// MemoryStore keeps profiles in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record // keyed by profile name
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Put stores the profile, replacing any existing profile with the same name.
// The record id is kept stable across updates.
func (s *MemoryStore) Put(ctx context.Context, p profile.Profile) (Record, error) {
	def, err := encode(p)
	if err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[p.Name]
	if !ok {
		rec = Record{ID: uuid.NewString(), Name: p.Name}
	}
	rec.Definition = def
	rec.UpdatedAt = time.Now().UTC()
	s.records[p.Name] = rec
	return rec, nil
}

// Get returns the stored profile with the given name.
func (s *MemoryStore) Get(ctx context.Context, name string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return Record{}, errors.New(errors.ErrCodeProfileNotFound, "profile %q not found", name)
	}
	return rec, nil
}

// List returns all stored profiles sorted by name.
func (s *MemoryStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the profile with the given name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[name]; !ok {
		return errors.New(errors.ErrCodeProfileNotFound, "profile %q not found", name)
	}
	delete(s.records, name)
	return nil
}

// Close does nothing for a memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
