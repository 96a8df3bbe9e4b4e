package store

import (
	"context"
	"fmt"
	"sync"

	"flexwage/apperr"
	"flexwage/models"
)

// memMap is the in-memory Map used by tests and ephemeral environments.
// Filter iterates in insertion order.
type memMap[T any] struct {
	mu    sync.RWMutex
	vals  map[string]T
	order []string
}

func newMemMap[T any]() *memMap[T] {
	return &memMap[T]{vals: make(map[string]T)}
}

func (m *memMap[T]) Get(_ context.Context, key string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.vals[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("key %q: %w", key, apperr.ErrNotFound)
	}
	return val, nil
}

func (m *memMap[T]) Put(_ context.Context, key string, val T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.vals[key]; !ok {
		m.order = append(m.order, key)
	}
	m.vals[key] = val
	return nil
}

func (m *memMap[T]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.vals[key]; !ok {
		return fmt.Errorf("key %q: %w", key, apperr.ErrNotFound)
	}
	delete(m.vals, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memMap[T]) Filter(_ context.Context, match func(T) bool) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []T
	for _, k := range m.order {
		if v := m.vals[k]; match(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// NewMemory builds a Store backed entirely by in-memory maps.
func NewMemory() *Store {
	return &Store{
		Accounts:      newMemMap[models.Account](),
		Users:         newMemMap[models.UserProfile](),
		Links:         newMemMap[models.PrincipalLink](),
		Workers:       newMemMap[models.WorkerProfile](),
		Businesses:    newMemMap[models.BusinessProfile](),
		Shifts:        newMemMap[models.Shift](),
		Applications:  newMemMap[models.ShiftApplication](),
		History:       newMemMap[models.WorkHistory](),
		Ratings:       newMemMap[models.Rating](),
		Credentials:   newMemMap[models.DIDDocument](),
		Notifications: newMemMap[models.Notification](),
	}
}
