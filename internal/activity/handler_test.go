package activity

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/example/shoe-store/internal/domain/cart"
	"github.com/example/shoe-store/internal/domain/user"
	"github.com/example/shoe-store/internal/infrastructure/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func encode(t *testing.T, key string, event any) []byte {
	t.Helper()
	env, err := kafka.NewEnvelope(key, event)
	require.NoError(t, err)
	data, err := json.Marshal(env)
	require.NoError(t, err)
	return data
}

func TestHandler_HandleEvent(t *testing.T) {
	h := NewHandler(zap.NewNop())
	ctx := context.Background()

	events := []any{
		cart.ItemAdded{SessionID: "s1", ShoeID: 5, Size: 42, Quantity: 2},
		cart.ItemAdded{SessionID: "s2", ShoeID: 5, Size: 43, Quantity: 1},
		cart.ItemAdded{SessionID: "s2", ShoeID: 7, Size: 38, Quantity: 1},
		cart.ItemRemoved{SessionID: "s2", ShoeID: 7, Size: 38},
		cart.Cleared{SessionID: "s1"},
		user.UserRegistered{UserID: "u1", Username: "alice"},
		user.UserLoggedIn{UserID: "u1", Username: "alice"},
		user.UserLoggedIn{UserID: "u2", Username: "bob"},
		user.UserLoggedOut{UserID: "u2"},
	}
	for _, e := range events {
		require.NoError(t, h.HandleEvent(ctx, []byte("k"), encode(t, "k", e)))
	}

	stats := h.Stats()
	assert.Equal(t, 3, stats.Events[cart.EventItemAdded])
	assert.Equal(t, 1, stats.Events[cart.EventItemRemoved])
	assert.Equal(t, 1, stats.Events[cart.EventCartCleared])
	assert.Equal(t, map[int64]int{5: 3, 7: 1}, stats.UnitsAdded)
	assert.Equal(t, 1, stats.Registered)
	assert.Equal(t, 1, stats.ActiveUsers)
}

func TestHandler_HandleEvent_Malformed(t *testing.T) {
	h := NewHandler(zap.NewNop())

	err := h.HandleEvent(context.Background(), nil, []byte("not json"))
	assert.Error(t, err)

	bad := []byte(`{"type":"CartItemAdded","data":"oops"}`)
	err = h.HandleEvent(context.Background(), nil, bad)
	assert.Error(t, err)
}

func TestHandler_HandleEvent_UnknownTypeIgnored(t *testing.T) {
	h := NewHandler(zap.NewNop())

	err := h.HandleEvent(context.Background(), nil, []byte(`{"type":"SomethingElse","data":{}}`))

	require.NoError(t, err)
	assert.Equal(t, 1, h.Stats().Events["SomethingElse"])
}

func TestHandler_Stats_IsACopy(t *testing.T) {
	h := NewHandler(zap.NewNop())
	require.NoError(t, h.HandleEvent(context.Background(), nil, encode(t, "k", cart.ItemAdded{ShoeID: 1, Quantity: 1})))

	stats := h.Stats()
	stats.UnitsAdded[1] = 100

	assert.Equal(t, 1, h.Stats().UnitsAdded[1])
}
