package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/andreyxaxa/hr-outbox/pkg/kafka/producer"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEventProducer() *EventProducer {
	return NewEventProducer(&producer.Producer{Writer: &kafka.Writer{}})
}

func messageWithID(id string) kafka.Message {
	return kafka.Message{Headers: []kafka.Header{{Key: deliveryIDHeader, Value: []byte(id)}}}
}

func TestNewEventProducerEnablesAsync(t *testing.T) {
	t.Parallel()

	ep := newTestEventProducer()

	assert.True(t, ep.Writer.Async)
	assert.NotNil(t, ep.Writer.Completion)
}

func TestCompleteDispatchesPerMessage(t *testing.T) {
	t.Parallel()

	ep := newTestEventProducer()

	results := map[string]error{}
	var calls int
	firstID := ep.register(func(err error) { calls++; results["first"] = err })
	secondID := ep.register(func(err error) { calls++; results["second"] = err })

	ep.complete([]kafka.Message{messageWithID(firstID)}, nil)

	brokerErr := errors.New("leader not available")
	ep.complete([]kafka.Message{messageWithID(secondID)}, brokerErr)

	require.Equal(t, 2, calls)
	assert.NoError(t, results["first"])
	assert.ErrorIs(t, results["second"], brokerErr)
}

func TestCompleteInvokesCallbackOnce(t *testing.T) {
	t.Parallel()

	ep := newTestEventProducer()

	var calls int
	id := ep.register(func(error) { calls++ })

	ep.complete([]kafka.Message{messageWithID(id)}, nil)
	ep.complete([]kafka.Message{messageWithID(id)}, nil)
	ep.complete([]kafka.Message{messageWithID("unknown")}, nil)

	assert.Equal(t, 1, calls)
}

func TestCloseFailsPendingCallbacks(t *testing.T) {
	t.Parallel()

	ep := newTestEventProducer()

	var got error
	ep.register(func(err error) { got = err })

	require.NoError(t, ep.Close())
	assert.ErrorIs(t, got, errNoAck)
}

func TestSendAsyncAfterCloseFailsImmediately(t *testing.T) {
	t.Parallel()

	ep := newTestEventProducer()
	require.NoError(t, ep.Close())

	done := make(chan error, 1)
	ep.SendAsync(context.Background(), "hr.employee.events", "key", []byte(`{}`), func(err error) { done <- err })

	assert.Error(t, <-done)
}
