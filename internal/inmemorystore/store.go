package inmemorystore

import (
	"sync"
	"sync/atomic"

	"github.com/nyantoasty/stitchgrid/internal/countstore"
)

// Store is an in-memory countstore.Store keyed by row number.
type Store struct {
	rows sync.Map // Key: row int, Value: countstore.Counts
	size atomic.Int64
}

// New creates a new, empty in-memory count store.
func New() countstore.Store {
	return &Store{}
}

// Get retrieves the cached counts for a row.
func (s *Store) Get(row int) (countstore.Counts, bool) {
	v, ok := s.rows.Load(row)
	if !ok {
		return countstore.Counts{}, false
	}
	return v.(countstore.Counts), true
}

// Put records the counts for a row.
func (s *Store) Put(row int, c countstore.Counts) {
	if _, loaded := s.rows.Swap(row, c); !loaded {
		s.size.Add(1)
	}
}

// Reset drops every cached row.
func (s *Store) Reset() {
	s.rows.Range(func(key, _ any) bool {
		if _, loaded := s.rows.LoadAndDelete(key); loaded {
			s.size.Add(-1)
		}
		return true
	})
}

// Len is the number of cached rows.
func (s *Store) Len() int {
	return int(s.size.Load())
}
