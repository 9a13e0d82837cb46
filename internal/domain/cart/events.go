package cart

import "time"

const (
	EventItemAdded   = "CartItemAdded"
	EventItemRemoved = "CartItemRemoved"
	EventCartCleared = "CartCleared"
)

type ItemAdded struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	ShoeID    int64     `json:"shoe_id"`
	Size      float64   `json:"size"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

func (ItemAdded) EventType() string { return EventItemAdded }

type ItemRemoved struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	ShoeID    int64     `json:"shoe_id"`
	Size      float64   `json:"size"`
	RemovedAt time.Time `json:"removed_at"`
}

func (ItemRemoved) EventType() string { return EventItemRemoved }

type Cleared struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	ClearedAt time.Time `json:"cleared_at"`
}

func (Cleared) EventType() string { return EventCartCleared }
