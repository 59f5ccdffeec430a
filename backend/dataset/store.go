// ABOUTME: Holder for the current rainfall snapshot with atomic replacement
// ABOUTME: Readers never observe a partially loaded dataset

package dataset

import (
	"sync/atomic"
	"time"
)

type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore starts with an empty snapshot so Current never returns nil.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(NewSnapshot("empty", nil, time.Time{}))
	return s
}

func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap installs next and returns the snapshot it replaced.
func (s *Store) Swap(next *Snapshot) *Snapshot {
	return s.current.Swap(next)
}
