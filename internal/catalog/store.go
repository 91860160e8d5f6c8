// internal/catalog/store.go
package catalog

import (
	"sort"
	"sync"
	"time"
)

// State describes where the catalog contents came from.
type State string

const (
	StateEmpty  State = "empty"
	StateReady  State = "ready"
	StateDemo   State = "demo"
	StateFailed State = "failed"
)

// Status is a point-in-time view of the store for rendering.
type Status struct {
	State    State     `json:"state"`
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Err      error     `json:"-"`
}

// Store holds the full catalog. Every load replaces the previous contents.
type Store struct {
	mu       sync.RWMutex
	items    []Item
	index    map[string]int
	state    State
	err      error
	loadedAt time.Time
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
		state: StateEmpty,
		now:   time.Now,
	}
}

// Load replaces the catalog with items fetched from the feed.
func (s *Store) Load(items []Item) {
	s.replace(items, StateReady, nil)
}

// LoadDemo replaces the catalog with the built-in demo set.
func (s *Store) LoadDemo(items []Item) {
	s.replace(items, StateDemo, nil)
}

// Fail empties the catalog and records err so stale data is never shown as fresh.
func (s *Store) Fail(err error) {
	s.replace(nil, StateFailed, err)
}

func (s *Store) replace(items []Item, state State, err error) {
	copied := make([]Item, len(items))
	copy(copied, items)

	index := make(map[string]int, len(copied))
	for i, item := range copied {
		if _, dup := index[item.ID]; !dup {
			index[item.ID] = i
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = copied
	s.index = index
	s.state = state
	s.err = err
	s.loadedAt = s.now()
}

// Items returns a copy of the catalog in feed order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Lookup finds an item by identity. Duplicate identities resolve to the first row.
func (s *Store) Lookup(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Categories returns the distinct non-empty categories, sorted. The "All"
// sentinel is not included.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, item := range s.items {
		if item.Category != "" {
			seen[item.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		State:    s.state,
		Count:    len(s.items),
		LoadedAt: s.loadedAt,
		Err:      s.err,
	}
}
