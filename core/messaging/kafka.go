package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON encoded payloads to kafka.
// The writer carries no default topic; each message names its own.
type KafkaPublisher struct {
	w messageWriter
}

// NewKafkaPublisher creates a publisher for the configured brokers.
func NewKafkaPublisher(cfg Config) *KafkaPublisher {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			MaxAttempts:            5,
			WriteTimeout:           timeout,
			ReadTimeout:            timeout,
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish writes one message keyed by a fresh UUID.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event for %s: %w", topic, err)
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(uuid.NewString()),
		Value: b,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and releases the writer.
func (p *KafkaPublisher) Close() error { return p.w.Close() }
