package consumer

import (
	"time"

	"github.com/segmentio/kafka-go"
)

type Option func(*Consumer)

func ConnAttempts(attempts int) Option {
	return func(c *Consumer) {
		c.connAttempts = attempts
	}
}

func ConnTimeout(timeout time.Duration) Option {
	return func(c *Consumer) {
		c.connTimeout = timeout
	}
}

// FromLatest makes a new consumer group start at the end of the topics instead of the beginning.
func FromLatest() Option {
	return func(c *Consumer) {
		c.startOffset = kafka.LastOffset
	}
}
