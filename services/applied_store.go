package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// AppliedSet tracks internship IDs that were already applied to. It keeps
// insertion order for persistence while giving set semantics for lookups.
type AppliedSet struct {
	ids  []string
	seen map[string]struct{}
}

// NewAppliedSet builds a set from the given IDs, collapsing duplicates.
func NewAppliedSet(ids ...string) *AppliedSet {
	s := &AppliedSet{seen: make(map[string]struct{})}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts an ID and reports whether it was new.
func (s *AppliedSet) Add(id string) bool {
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

// Has reports whether the ID is already in the set.
func (s *AppliedSet) Has(id string) bool {
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of distinct IDs.
func (s *AppliedSet) Len() int {
	return len(s.ids)
}

// IDs returns the IDs in insertion order.
func (s *AppliedSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// AppliedStore persists the applied set between runs. The workflow loads
// once at start and saves after every confirmed application plus once at
// the end, so partial progress survives an aborted run.
type AppliedStore interface {
	Load() (*AppliedSet, error)
	Save(set *AppliedSet) error
}

// FileAppliedStore stores the applied set as a JSON array of ID strings
// in a single file. Saves overwrite the whole file.
type FileAppliedStore struct {
	Path string
}

func NewFileAppliedStore(path string) *FileAppliedStore {
	return &FileAppliedStore{Path: path}
}

// Load reads the applied set. A missing file yields an empty set.
func (s *FileAppliedStore) Load() (*AppliedSet, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewAppliedSet(), nil
		}
		return nil, fmt.Errorf("failed to read applied file: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse applied file: %w", err)
	}

	return NewAppliedSet(ids...), nil
}

// Save overwrites the applied file with the set's IDs in insertion order.
func (s *FileAppliedStore) Save(set *AppliedSet) error {
	data, err := json.Marshal(set.IDs())
	if err != nil {
		return fmt.Errorf("failed to marshal applied set: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write applied file: %w", err)
	}

	return nil
}

// MemoryAppliedStore keeps the applied set in memory. Used in tests and
// as a degraded fallback when no persistence is configured.
type MemoryAppliedStore struct {
	mu  sync.Mutex
	ids []string
}

func NewMemoryAppliedStore(ids ...string) *MemoryAppliedStore {
	return &MemoryAppliedStore{ids: append([]string(nil), ids...)}
}

func (s *MemoryAppliedStore) Load() (*AppliedSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewAppliedSet(s.ids...), nil
}

func (s *MemoryAppliedStore) Save(set *AppliedSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = set.IDs()
	return nil
}
