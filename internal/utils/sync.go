// Copyright (c) 2024 RoseLoverX

package utils

import "sync"

// SyncMap is a mutex-guarded map for state written by a single goroutine
// while being read from arbitrary ones.
type SyncMap[K comparable, V any] struct {
	mutex sync.RWMutex
	m     map[K]V
}

func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{m: make(map[K]V)}
}

func (s *SyncMap[K, V]) Has(key K) bool {
	s.mutex.RLock()
	_, ok := s.m[key]
	s.mutex.RUnlock()
	return ok
}

func (s *SyncMap[K, V]) Get(key K) (V, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *SyncMap[K, V]) Add(key K, value V) {
	s.mutex.Lock()
	s.m[key] = value
	s.mutex.Unlock()
}

func (s *SyncMap[K, V]) Keys() []K {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	keys := make([]K, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}

func (s *SyncMap[K, V]) Delete(key K) bool {
	s.mutex.Lock()
	_, ok := s.m[key]
	delete(s.m, key)
	s.mutex.Unlock()
	return ok
}

// Pop removes the key and returns its value, if any. A reply handler must
// be claimed by exactly one caller, so lookup and removal happen under one
// critical section.
func (s *SyncMap[K, V]) Pop(key K) (V, bool) {
	s.mutex.Lock()
	v, ok := s.m[key]
	if ok {
		delete(s.m, key)
	}
	s.mutex.Unlock()
	return v, ok
}

func (s *SyncMap[K, V]) Len() int {
	s.mutex.RLock()
	c := len(s.m)
	s.mutex.RUnlock()
	return c
}

func (s *SyncMap[K, V]) Reset() {
	s.mutex.Lock()
	s.m = make(map[K]V)
	s.mutex.Unlock()
}
