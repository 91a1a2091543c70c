// Package memory keeps transactions in process memory. Nothing survives
// a restart; it exists for tests and throwaway sessions.
package memory

import (
	"context"
	"sync"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

func (s *Store) Save(_ context.Context, records []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Transaction(nil), records...)
	return nil
}

func (s *Store) Close() error { return nil }
