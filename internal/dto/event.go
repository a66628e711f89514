package dto

import (
	"time"

	"github.com/google/uuid"
)

// EventEnvelope - общие поля события, прочитанного из брокера, плюс исходный payload.
type EventEnvelope struct {
	EventID       uuid.UUID
	EventType     string
	AggregateID   uuid.UUID
	AggregateType string
	OccurredOn    time.Time
	Raw           []byte
}
