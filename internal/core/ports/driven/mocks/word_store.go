package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/ght-core/internal/core/domain"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven"
)

// Ensure MockWordStore implements WordStore
var _ driven.WordStore = (*MockWordStore)(nil)

// MockWordStore is an in-memory concordance keyed by track key column
type MockWordStore struct {
	mu      sync.RWMutex
	rows    map[string][]domain.WordRow // "key/word" columns -> rows
	err     error
	queries []domain.RangeBounds
}

// NewMockWordStore creates a new MockWordStore
func NewMockWordStore() *MockWordStore {
	return &MockWordStore{
		rows: make(map[string][]domain.WordRow),
	}
}

// Add appends rows to a track. Rows are kept sorted by key (stable, so
// same-key rows keep insertion order like the real store's word order).
func (m *MockWordStore) Add(track domain.Track, rows ...domain.WordRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := trackKey(track)
	m.rows[key] = append(m.rows[key], rows...)
	sort.SliceStable(m.rows[key], func(i, j int) bool {
		return m.rows[key][i].Key < m.rows[key][j].Key
	})
}

// AddWords appends one row per word under the same verse key
func (m *MockWordStore) AddWords(track domain.Track, key domain.VerseKey, words ...string) {
	rows := make([]domain.WordRow, 0, len(words))
	for _, w := range words {
		w := w
		rows = append(rows, domain.WordRow{Key: key, Word: &w})
	}
	m.Add(track, rows...)
}

// SetError makes every query fail with err (nil clears it)
func (m *MockWordStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockWordStore) QueryRange(ctx context.Context, track domain.Track, bounds domain.RangeBounds) ([]domain.WordRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, bounds)

	if m.err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, m.err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var out []domain.WordRow
	for _, row := range m.rows[trackKey(track)] {
		if bounds.Contains(row.Key) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *MockWordStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Helper methods for testing

// Queries returns the bounds of every QueryRange call
func (m *MockWordStore) Queries() []domain.RangeBounds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.RangeBounds, len(m.queries))
	copy(out, m.queries)
	return out
}

func (m *MockWordStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make(map[string][]domain.WordRow)
	m.err = nil
	m.queries = nil
}

func trackKey(track domain.Track) string {
	return track.KeyColumn + "/" + track.WordColumn
}
