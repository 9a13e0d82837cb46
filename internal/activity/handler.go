package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/example/shoe-store/internal/domain/cart"
	"github.com/example/shoe-store/internal/domain/user"
	"github.com/example/shoe-store/internal/infrastructure/kafka"
	"go.uber.org/zap"
)

// Stats is a point-in-time view of the activity seen so far.
type Stats struct {
	Events      map[string]int `json:"events"`
	UnitsAdded  map[int64]int  `json:"units_added"`
	Registered  int            `json:"registered"`
	ActiveUsers int            `json:"active_users"`
}

// Handler consumes storefront activity events, logs them and keeps
// running totals.
type Handler struct {
	logger *zap.Logger

	mu          sync.Mutex
	events      map[string]int
	unitsAdded  map[int64]int // shoe id -> units added to carts
	registered  int
	activeUsers map[string]bool
}

// NewHandler creates a new activity handler
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger:      logger,
		events:      make(map[string]int),
		unitsAdded:  make(map[int64]int),
		activeUsers: make(map[string]bool),
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var env kafka.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.events[env.Type]++

	switch env.Type {
	case cart.EventItemAdded:
		var e cart.ItemAdded
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		h.unitsAdded[e.ShoeID] += e.Quantity
		h.logger.Info("cart item added",
			zap.String("session_id", e.SessionID),
			zap.Int64("shoe_id", e.ShoeID),
			zap.Float64("size", e.Size),
			zap.Int("quantity", e.Quantity))

	case cart.EventItemRemoved:
		var e cart.ItemRemoved
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		h.logger.Info("cart item removed",
			zap.String("session_id", e.SessionID),
			zap.Int64("shoe_id", e.ShoeID),
			zap.Float64("size", e.Size))

	case cart.EventCartCleared:
		h.logger.Info("cart cleared", zap.String("key", env.Key))

	case user.EventUserRegistered:
		var e user.UserRegistered
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		h.registered++
		h.logger.Info("user registered", zap.String("user_id", e.UserID), zap.String("username", e.Username))

	case user.EventUserLoggedIn:
		var e user.UserLoggedIn
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		h.activeUsers[e.UserID] = true
		h.logger.Info("user logged in", zap.String("user_id", e.UserID), zap.String("ip", e.IPAddress))

	case user.EventUserLoggedOut:
		var e user.UserLoggedOut
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		delete(h.activeUsers, e.UserID)
		h.logger.Info("user logged out", zap.String("user_id", e.UserID))

	default:
		h.logger.Debug("ignoring event", zap.String("type", env.Type))
	}
	return nil
}

// Stats returns a copy of the running totals.
func (h *Handler) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := Stats{
		Events:      make(map[string]int, len(h.events)),
		UnitsAdded:  make(map[int64]int, len(h.unitsAdded)),
		Registered:  h.registered,
		ActiveUsers: len(h.activeUsers),
	}
	for k, v := range h.events {
		s.Events[k] = v
	}
	for k, v := range h.unitsAdded {
		s.UnitsAdded[k] = v
	}
	return s
}
