package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/ahkdeps/internal/core/domain"
)

// store is the backing storage for cached analyses.
type store interface {
	get(key domain.SourceFile) (domain.DependencyInfo, bool)
	put(key domain.SourceFile, info domain.DependencyInfo)
	remove(key domain.SourceFile)
	purge()
	len() int
}

// mapStore is an unbounded store.
type mapStore struct {
	mu      sync.RWMutex
	entries map[domain.SourceFile]domain.DependencyInfo
}

func newMapStore() *mapStore {
	return &mapStore{entries: make(map[domain.SourceFile]domain.DependencyInfo)}
}

func (s *mapStore) get(key domain.SourceFile) (domain.DependencyInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.entries[key]
	return info, ok
}

func (s *mapStore) put(key domain.SourceFile, info domain.DependencyInfo) {
	s.mu.Lock()
	s.entries[key] = info
	s.mu.Unlock()
}

func (s *mapStore) remove(key domain.SourceFile) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *mapStore) purge() {
	s.mu.Lock()
	clear(s.entries)
	s.mu.Unlock()
}

func (s *mapStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// lruStore evicts the least recently analyzed file once full.
type lruStore struct {
	l *lru.Cache[domain.SourceFile, domain.DependencyInfo]
}

func (s lruStore) get(key domain.SourceFile) (domain.DependencyInfo, bool) {
	return s.l.Get(key)
}

func (s lruStore) put(key domain.SourceFile, info domain.DependencyInfo) {
	s.l.Add(key, info)
}

func (s lruStore) remove(key domain.SourceFile) {
	s.l.Remove(key)
}

func (s lruStore) purge() {
	s.l.Purge()
}

func (s lruStore) len() int {
	return s.l.Len()
}
