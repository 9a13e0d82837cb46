package store

import (
	"context"
	"sync"

	"github.com/example/shoe-store/internal/domain/user"
)

// MemoryUserStore is an in-process user.Store.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]user.User // username -> user
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]user.User)}
}

func (s *MemoryUserStore) CreateUser(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return user.ErrUsernameTaken
	}
	s.users[u.Username] = *u
	return nil
}

func (s *MemoryUserStore) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}
