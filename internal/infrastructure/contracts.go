package infrastructure

import (
	"context"
)

type (
	// EventSender publishes to the broker without blocking; done is called exactly
	// once with the broker outcome (nil on acknowledgement).
	EventSender interface {
		SendAsync(ctx context.Context, topic, key string, payload []byte, done func(err error))
		Close() error
	}

	DestinationResolver interface {
		Resolve(eventType string) (string, bool)
	}
)
