package tracker

import (
	"context"
	"sort"
	"sync"
)

type memoryTracker struct {
	mu   sync.Mutex
	runs map[string][]Ref
}

// NewMemoryTracker builds Tracker living as long as process does
func NewMemoryTracker() Tracker {
	return &memoryTracker{runs: make(map[string][]Ref)}
}

func (m *memoryTracker) Track(_ context.Context, runID string, ref Ref) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[runID] = append(m.runs[runID], ref)
	return nil
}

func (m *memoryTracker) Refs(_ context.Context, runID string) ([]Ref, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	refs := make([]Ref, len(m.runs[runID]))
	copy(refs, m.runs[runID])
	return refs, nil
}

func (m *memoryTracker) Forget(_ context.Context, runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.runs, runID)
	return nil
}

func (m *memoryTracker) Runs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.runs))
	for id := range m.runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
