// Package tracker records which destination roots a run has already
// materialized, so bundles touched by many changed files are copied once.
package tracker

import (
	"sort"
	"sync"

	"github.com/arthur-debert/sfdelta/pkg/paths"
)

// CopiedRootSet is the run-scoped set of copied roots. It is safe for
// concurrent use.
type CopiedRootSet struct {
	mu    sync.Mutex
	roots map[string]struct{}
	locks map[string]*sync.Mutex
}

// New returns an empty set
func New() *CopiedRootSet {
	return &CopiedRootSet{
		roots: make(map[string]struct{}),
		locks: make(map[string]*sync.Mutex),
	}
}

// Seen reports whether root was recorded
func (s *CopiedRootSet) Seen(root string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.roots[paths.Normalize(root)]
	return ok
}

// Record marks root as copied
func (s *CopiedRootSet) Record(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roots[paths.Normalize(root)] = struct{}{}
}

// Claim locks root for the caller. already reports whether root was recorded
// by the time the lock was acquired; release must be called in both cases.
func (s *CopiedRootSet) Claim(root string) (release func(), already bool) {
	key := paths.Normalize(root)

	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock, s.Seen(key)
}

// Len returns the number of recorded roots
func (s *CopiedRootSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.roots)
}

// Roots returns the recorded roots, sorted
func (s *CopiedRootSet) Roots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.roots))
	for r := range s.roots {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
