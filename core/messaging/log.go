package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// LogPublisher writes events to the logger instead of a broker.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a publisher backed by logger.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, topic string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event for %s: %w", topic, err)
	}
	p.logger.Info("Event published",
		zap.String("topic", topic),
		zap.ByteString("payload", b),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
