package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

var (
	// ErrNotFound is returned when no probe has been recorded for a panel.
	ErrNotFound = errors.New("no status for panel")
)

// StatusHistory holds a time-ordered list of probe records for a panel.
type StatusHistory struct {
	Records []panel.Status
}

// MemoryStore is a concurrency-safe in-memory implementation of a status store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: panel name, value: history
	data map[string]*StatusHistory

	maxHistory int // max number of records per panel
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*StatusHistory),
		maxHistory: maxHistory,
	}
}

// Save appends a record for its panel and enforces retention.
func (s *MemoryStore) Save(st panel.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[st.Panel]
	if !ok {
		history = &StatusHistory{}
		s.data[st.Panel] = history
	}

	history.Records = append(history.Records, st)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Records) > s.maxHistory {
		over := len(history.Records) - s.maxHistory
		history.Records = history.Records[over:]
	}
}

// Latest returns the most recent record of every panel, sorted by name.
func (s *MemoryStore) Latest() []panel.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]panel.Status, 0, len(s.data))
	for _, history := range s.data {
		if n := len(history.Records); n > 0 {
			out = append(out, history.Records[n-1])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Panel < out[j].Panel })
	return out
}

// History returns a copy of all records kept for a panel, oldest first.
func (s *MemoryStore) History(name string) ([]panel.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[name]
	if !ok || len(history.Records) == 0 {
		return nil, ErrNotFound
	}
	return append([]panel.Status(nil), history.Records...), nil
}
