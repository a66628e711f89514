package kafka

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/hr-outbox/pkg/kafka/consumer"
	"github.com/segmentio/kafka-go"
)

type EventConsumer struct {
	*consumer.Consumer
	group string
}

func NewEventConsumer(c *consumer.Consumer, group string) *EventConsumer {
	return &EventConsumer{Consumer: c, group: group}
}

func (ec *EventConsumer) Group() string {
	return ec.group
}

func (ec *EventConsumer) ReadEvent(ctx context.Context) (kafka.Message, error) {
	msg, err := ec.Reader.FetchMessage(ctx)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("EventConsumer(%s) - ReadEvent - ec.Reader.FetchMessage: %w", ec.group, err)
	}

	return msg, nil
}

func (ec *EventConsumer) CommitEvent(ctx context.Context, event kafka.Message) error {
	err := ec.Reader.CommitMessages(ctx, event)
	if err != nil {
		return fmt.Errorf("EventConsumer(%s) - CommitEvent - ec.Reader.CommitMessages: %w", ec.group, err)
	}

	return nil
}

func (ec *EventConsumer) Close() error {
	err := ec.Consumer.Close()
	if err != nil {
		return fmt.Errorf("EventConsumer(%s) - Close: %w", ec.group, err)
	}

	return nil
}
