package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

const headerEventType = "event_type"

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: writer}
}

// Publish writes the event wrapped in an Envelope. Messages with the same
// key land on the same partition.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	msg, err := buildMessage(key, event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func buildMessage(key string, event any) (kafka.Message, error) {
	env, err := NewEnvelope(key, event)
	if err != nil {
		return kafka.Message{}, err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:     []byte(key),
		Value:   data,
		Time:    env.OccurredAt,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte(env.Type)}},
	}, nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It stands in when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, key string, event any) error {
	return nil
}
