// Package dataset holds the in-memory item sequence together with the shared,
// mutable selection set and custom order.
//
// Nothing here is persisted: a Store is rebuilt identically on every process start.
package dataset

import (
	"sync"

	"numlist/internal/model"
)

// DefaultSize is the number of items in the reference deployment.
const DefaultSize = 1_000_000

type Store struct {
	items []model.Item

	mu        sync.RWMutex
	selection *Selection
	order     []int64
	version   uint64
}

// Snapshot is a consistent view of the mutable state at one version.
// Its fields are shared and must not be modified.
type Snapshot struct {
	Selection *Selection
	Order     []int64
	Version   uint64
}

// New builds a dense dataset of n items with ids (and values) 1..n.
func New(n int) *Store {
	if n < 0 {
		n = 0
	}
	items := make([]model.Item, n)
	for i := range items {
		id := int64(i + 1)
		items[i] = model.Item{ID: id, Value: id}
	}
	return &Store{
		items:     items,
		selection: NewSelection(nil),
		order:     []int64{},
	}
}

func (s *Store) Len() int { return len(s.items) }

// Items returns the full item sequence in ascending id order. The slice is shared
// and must be treated as read-only.
func (s *Store) Items() []model.Item { return s.items }

func (s *Store) Item(id int64) (model.Item, bool) {
	if id < 1 || id > int64(len(s.items)) {
		return model.Item{}, false
	}
	return s.items[id-1], true
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Selection: s.selection, Order: s.order, Version: s.version}
}

func (s *Store) Selection() *Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

func (s *Store) IsSelected(id int64) bool {
	return s.Selection().Contains(id)
}

// SetSelection replaces the selection set wholesale and returns the new version.
func (s *Store) SetSelection(ids []int64) uint64 {
	sel := NewSelection(ids)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = sel
	s.version++
	return s.version
}

// Order returns the current custom order. The slice is shared and must be
// treated as read-only.
func (s *Store) Order() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

// SetOrder replaces the custom order wholesale and returns the new version.
func (s *Store) SetOrder(ids []int64) uint64 {
	order := make([]int64, len(ids))
	copy(order, ids)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.version++
	return s.version
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
