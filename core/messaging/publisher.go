package messaging

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Event names, combined with the configured prefix by Topic.
const (
	ProductUpdated   = "product-updated"
	ProductRefreshed = "product-refreshed"
)

// Publisher delivers a payload to a named topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

// Topic returns the fully qualified topic for an event name.
func Topic(cfg Config, name string) string {
	prefix := strings.TrimSuffix(cfg.TopicPrefix, ".")
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// New builds the publisher selected by cfg.
func New(cfg Config, logger *zap.Logger) (Publisher, error) {
	switch cfg.Driver {
	case "", DriverLog:
		return NewLogPublisher(logger), nil
	case DriverKafka:
		if len(cfg.Brokers) == 0 {
			return nil, fmt.Errorf("kafka publisher requires at least one broker")
		}
		return NewKafkaPublisher(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported messaging driver: %s", cfg.Driver)
	}
}
