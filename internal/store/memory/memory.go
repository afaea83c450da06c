// Package memory provides an in-memory store, used in tests and as the
// zero-dependency default backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finpro/internal/core"
	"finpro/internal/store"
)

type Store struct {
	mu    sync.Mutex
	txs   map[string][]core.Transaction // keyed by user
	users map[string]store.User
}

func New() *Store {
	return &Store{
		txs:   make(map[string][]core.Transaction),
		users: make(map[string]store.User),
	}
}

// Load returns a copy of the user's transactions in insertion order.
// An unknown user yields an empty set, not an error.
func (s *Store) Load(_ context.Context, userKey string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs[userKey]))
	copy(out, s.txs[userKey])
	return out, nil
}

// Save replaces the user's whole set under the lock, so no reader ever sees
// a partially loaded state.
func (s *Store) Save(_ context.Context, userKey string, txs []core.Transaction) error {
	cp := make([]core.Transaction, len(txs))
	copy(cp, txs)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[userKey] = cp
	return nil
}

func (s *Store) Append(_ context.Context, userKey string, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.txs[userKey] {
		if existing.ID == tx.ID {
			return fmt.Errorf("append %s: %w", tx.ID, store.ErrDuplicateID)
		}
	}
	s.txs[userKey] = append(s.txs[userKey], tx)
	return nil
}

func (s *Store) CreateUser(_ context.Context, u store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return store.ErrDuplicateUsername
	}
	s.users[u.Username] = u
	return nil
}

func (s *Store) GetUser(_ context.Context, username string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return store.User{}, store.ErrUserNotFound
	}
	return u, nil
}
