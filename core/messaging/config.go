package messaging

import "time"

const (
	// DriverLog writes events to the logger.
	DriverLog = "log"
	// DriverKafka writes events to kafka.
	DriverKafka = "kafka"
)

// Config holds configuration for the event publisher.
type Config struct {
	// Driver selects the publisher (log, kafka).
	Driver string `mapstructure:"driver" default:"log"`
	// Brokers lists the kafka bootstrap addresses.
	Brokers []string `mapstructure:"brokers" default:"localhost:9092"`
	// TopicPrefix is prepended to every topic name.
	TopicPrefix string `mapstructure:"topic_prefix" default:"products"`
	// WriteTimeout bounds a single publish.
	WriteTimeout time.Duration `mapstructure:"write_timeout" default:"5s"`
}
