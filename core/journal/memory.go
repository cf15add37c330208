package journal

import (
	"context"
	"sync"
)

// MemoryJournal keeps records in memory.
type MemoryJournal struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryJournal returns an empty in-memory journal.
func NewMemoryJournal() *MemoryJournal { return &MemoryJournal{} }

func (m *MemoryJournal) Append(_ context.Context, rec Record) error {
	m.mu.Lock()
	m.records = append(m.records, rec)
	m.mu.Unlock()
	return nil
}

func (m *MemoryJournal) Query(_ context.Context, q Query) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Record
	for _, r := range m.records {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryJournal) Close() error { return nil }
