package session

import (
	"context"
	"errors"
	"time"

	"github.com/example/shoe-store/internal/domain/cart"
)

var (
	ErrNotFound = errors.New("session not found")
)

// Flash levels understood by the templates.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is the per-visitor state kept server side: the cart and any
// pending flash messages.
type Session struct {
	ID       string     `json:"-"`
	Cart     *cart.Cart `json:"cart"`
	Messages []Flash    `json:"messages,omitempty"`

	isNew    bool
	modified bool
}

func newSession(id string) *Session {
	return &Session{ID: id, Cart: cart.New(), isNew: true}
}

// UpdateCart applies fn to the cart and marks the session for saving.
func (s *Session) UpdateCart(fn func(c *cart.Cart) error) error {
	if s.Cart == nil {
		s.Cart = cart.New()
	}
	if err := fn(s.Cart); err != nil {
		return err
	}
	s.modified = true
	return nil
}

func (s *Session) AddFlash(level, message string) {
	s.Messages = append(s.Messages, Flash{Level: level, Message: message})
	s.modified = true
}

// PopFlashes returns pending messages and removes them from the session.
func (s *Session) PopFlashes() []Flash {
	if len(s.Messages) == 0 {
		return nil
	}
	out := s.Messages
	s.Messages = nil
	s.modified = true
	return out
}

func (s *Session) Modified() bool {
	return s.modified
}

func (s *Session) IsNew() bool {
	return s.isNew
}

// Store persists sessions by id.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
