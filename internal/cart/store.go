// internal/cart/store.go
package cart

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"bookstall/internal/catalog"
	"bookstall/internal/logging"
)

// Store is the session cart. Lines keep the order in which they were first added
// and there is at most one line per identity.
type Store struct {
	mu          sync.Mutex
	lines       []*Line
	index       map[string]*Line
	subscribers []func(Summary)
	logger      *zap.Logger
	mutations   metric.Int64Counter
}

func NewStore(logger *zap.Logger) *Store {
	counter, err := otel.Meter("bookstall/cart").Int64Counter("cart.mutations",
		metric.WithDescription("Cart mutations by operation"),
	)
	if err != nil {
		counter = noop.Int64Counter{}
	}
	return &Store{
		index:     make(map[string]*Line),
		logger:    logging.OrNop(logger),
		mutations: counter,
	}
}

// Subscribe registers fn to be called with the new count and total after each
// mutation. fn runs outside the store lock.
func (s *Store) Subscribe(fn func(Summary)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Add puts one copy of item in the cart. A second add of the same identity bumps
// the quantity and keeps the original unit price.
func (s *Store) Add(item catalog.Item) (Line, error) {
	if item.IsSold() {
		return Line{}, ErrItemSold
	}

	s.mu.Lock()
	line, ok := s.index[item.ID]
	if ok {
		line.Quantity++
	} else {
		line = &Line{
			ID:        item.ID,
			Title:     item.Title,
			Author:    item.Author,
			CoverURL:  item.CoverURL(),
			Quantity:  1,
			UnitPrice: item.EffectivePrice(),
		}
		s.lines = append(s.lines, line)
		s.index[item.ID] = line
	}
	added := *line
	summary, subs := s.summaryLocked()
	s.mu.Unlock()

	s.logger.Debug("added to cart", zap.String("item_id", added.ID), zap.Int("quantity", added.Quantity))
	s.record("add")
	notify(subs, summary)
	return added, nil
}

// SetQuantity sets the quantity of an existing line; values below 1 become 1.
// It reports false when no line has that identity.
func (s *Store) SetQuantity(id string, qty int) (Line, bool) {
	s.mu.Lock()
	line, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return Line{}, false
	}
	line.Quantity = clampQuantity(qty)
	updated := *line
	summary, subs := s.summaryLocked()
	s.mu.Unlock()

	s.record("set_quantity")
	notify(subs, summary)
	return updated, true
}

// Remove deletes the line with that identity. Removing an absent identity is a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	if _, ok := s.index[id]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.index, id)
	for i, line := range s.lines {
		if line.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}
	summary, subs := s.summaryLocked()
	s.mu.Unlock()

	s.record("remove")
	notify(subs, summary)
	return true
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.index = make(map[string]*Line)
	summary, subs := s.summaryLocked()
	s.mu.Unlock()

	s.record("clear")
	notify(subs, summary)
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		out = append(out, *line)
	}
	return out
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Count is the number of books in the cart, i.e. the sum of quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{Count: s.countLocked(), Total: s.totalLocked()}
}

func (s *Store) totalLocked() float64 {
	var total float64
	for _, line := range s.lines {
		total += line.LineTotal()
	}
	return total
}

func (s *Store) countLocked() int {
	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *Store) summaryLocked() (Summary, []func(Summary)) {
	subs := make([]func(Summary), len(s.subscribers))
	copy(subs, s.subscribers)
	return Summary{Count: s.countLocked(), Total: s.totalLocked()}, subs
}

func (s *Store) record(op string) {
	s.mutations.Add(context.Background(), 1, metric.WithAttributes(attribute.String("op", op)))
}

func notify(subs []func(Summary), summary Summary) {
	for _, fn := range subs {
		fn(summary)
	}
}
