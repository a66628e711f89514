package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/andreyxaxa/hr-outbox/pkg/kafka/headers"
	"github.com/andreyxaxa/hr-outbox/pkg/kafka/producer"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const deliveryIDHeader = "delivery_id"

var errNoAck = errors.New("writer closed before the message was acknowledged")

// EventProducer - асинхронная отправка: WriteMessages сразу возвращается,
// результат приходит в Completion батча, откуда вызываются колбэки отправителей.
type EventProducer struct {
	*producer.Producer

	pending sync.Map // delivery id -> func(error)
}

func NewEventProducer(p *producer.Producer) *EventProducer {
	ep := &EventProducer{Producer: p}

	p.Writer.Async = true
	p.Writer.Completion = ep.complete

	return ep
}

func (ep *EventProducer) SendAsync(ctx context.Context, topic, key string, payload []byte, done func(err error)) {
	id := ep.register(done)

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: deliveryIDHeader, Value: []byte(id)},
		},
	}
	headers.Inject(ctx, &msg.Headers)

	// в async-режиме ошибка здесь - только немедленный отказ (writer закрыт, кривое сообщение)
	err := ep.Writer.WriteMessages(ctx, msg)
	if err != nil {
		ep.resolve(id, fmt.Errorf("EventProducer - SendAsync - ep.Writer.WriteMessages: %w", err))
	}
}

func (ep *EventProducer) register(done func(err error)) string {
	id := uuid.NewString()
	ep.pending.Store(id, done)

	return id
}

func (ep *EventProducer) resolve(id string, err error) {
	if cb, ok := ep.pending.LoadAndDelete(id); ok {
		cb.(func(error))(err)
	}
}

func (ep *EventProducer) complete(messages []kafka.Message, err error) {
	if err != nil {
		err = fmt.Errorf("EventProducer - complete: %w", err)
	}

	for _, msg := range messages {
		for _, h := range msg.Headers {
			if h.Key == deliveryIDHeader {
				ep.resolve(string(h.Value), err)
				break
			}
		}
	}
}

// Close flushes buffered messages and fails callbacks the writer never completed.
func (ep *EventProducer) Close() error {
	err := ep.Producer.Close()

	ep.pending.Range(func(key, _ any) bool {
		ep.resolve(key.(string), errNoAck)
		return true
	})

	if err != nil {
		return fmt.Errorf("EventProducer - Close: %w", err)
	}

	return nil
}
