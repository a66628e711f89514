package consumer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	_defaultConnAttempts = 10
	_defaultConnTimeout  = time.Second
)

type Consumer struct {
	connAttempts int
	connTimeout  time.Duration
	startOffset  int64

	brokers []string
	groupID string
	topics  []string

	Reader *kafka.Reader
}

func New(ctx context.Context, brokers []string, groupID string, topics []string, opts ...Option) (*Consumer, error) {
	c := &Consumer{
		connAttempts: _defaultConnAttempts,
		connTimeout:  _defaultConnTimeout,
		startOffset:  kafka.FirstOffset,
		brokers:      brokers,
		groupID:      groupID,
		topics:       topics,
	}

	for _, opt := range opts {
		opt(c)
	}

	if len(c.brokers) == 0 || len(c.topics) == 0 {
		return nil, fmt.Errorf("Kafka Consumer - New - brokers and topics are required")
	}

	c.Reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     c.brokers,
		GroupID:     c.groupID,
		GroupTopics: c.topics,
		StartOffset: c.startOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})

	var err error

	for c.connAttempts > 0 {
		err = c.ping(ctx)
		if err == nil {
			break
		}

		log.Printf("Kafka consumer is trying to connect, attempts left: %d", c.connAttempts)

		time.Sleep(c.connTimeout)

		c.connAttempts--
	}

	if err != nil {
		_ = c.Reader.Close()

		return nil, fmt.Errorf("Kafka Consumer - New - connAttempts == 0: %w", err)
	}

	return c, nil
}

func (c *Consumer) ping(ctx context.Context) error {
	conn, err := kafka.DialContext(ctx, "tcp", c.brokers[0])
	if err != nil {
		return fmt.Errorf("Kafka Consumer - kafka.DialContext: %w", err)
	}
	defer conn.Close()

	_, err = conn.Brokers()
	if err != nil {
		return fmt.Errorf("Kafka Consumer - conn.Brokers: %w", err)
	}

	return nil
}

func (c *Consumer) Close() error {
	if c.Reader != nil {
		return c.Reader.Close()
	}
	return nil
}
