// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package querycache

import (
	"sync"
	"sync/atomic"
)

// store is a copy-on-write map of entries. Readers load the current map
// without locking; writers copy it, apply their change and publish the copy.
type store[V any] struct {
	mu   sync.Mutex
	data atomic.Pointer[map[string]*Entry[V]]
}

func newStore[V any]() *store[V] {
	s := &store[V]{}
	m := make(map[string]*Entry[V])
	s.data.Store(&m)
	return s
}

func (s *store[V]) get(id string) (*Entry[V], bool) {
	ent, ok := (*s.data.Load())[id]
	return ent, ok
}

func (s *store[V]) put(id string, ent *Entry[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := *s.data.Load()
	n := make(map[string]*Entry[V], len(old)+1)
	for k, v := range old {
		n[k] = v
	}
	n[id] = ent
	s.data.Store(&n)
}

// update replaces the entry for id with fn(current) while holding the write
// lock. It returns false, and changes nothing, when id is absent.
func (s *store[V]) update(id string, fn func(Entry[V]) Entry[V]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := *s.data.Load()
	cur, ok := old[id]
	if !ok {
		return false
	}
	next := fn(*cur)

	n := make(map[string]*Entry[V], len(old))
	for k, v := range old {
		n[k] = v
	}
	n[id] = &next
	s.data.Store(&n)
	return true
}

func (s *store[V]) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := *s.data.Load()
	if _, ok := old[id]; !ok {
		return false
	}
	n := make(map[string]*Entry[V], len(old))
	for k, v := range old {
		if k != id {
			n[k] = v
		}
	}
	s.data.Store(&n)
	return true
}

func (s *store[V]) size() int {
	return len(*s.data.Load())
}
