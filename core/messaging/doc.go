// Package messaging publishes domain events to the message broker.
//
// Two publishers are available:
//   - KafkaPublisher writes JSON messages through segmentio/kafka-go
//   - LogPublisher writes the same payloads to the structured logger
//
// Usage:
//
//	pub, err := messaging.New(cfg.Messaging, log)
//	defer pub.Close()
//	err = pub.Publish(ctx, messaging.Topic(cfg.Messaging, messaging.ProductUpdated), event)
package messaging
