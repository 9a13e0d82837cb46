package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every activity event published to Kafka.
type Event interface {
	EventType() string
}

// Envelope is the message value written to the activity topic.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// NewEnvelope wraps an event. Values that do not implement Event are
// tagged with an empty type.
func NewEnvelope(key string, event any) (*Envelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	env := &Envelope{
		ID:         uuid.NewString(),
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	if e, ok := event.(Event); ok {
		env.Type = e.EventType()
	}
	return env, nil
}
