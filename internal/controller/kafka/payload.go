package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/google/uuid"
)

// eventPayload - поля, общие для всех HR-событий в payload.
type eventPayload struct {
	EventID       uuid.UUID `json:"event_id"`
	EventType     string    `json:"event_type"`
	AggregateID   uuid.UUID `json:"aggregate_id"`
	AggregateType string    `json:"aggregate_type"`
	OccurredOn    time.Time `json:"occurred_on"`
}

func decodeEnvelope(value []byte) (dto.EventEnvelope, error) {
	var p eventPayload
	if err := json.Unmarshal(value, &p); err != nil {
		return dto.EventEnvelope{}, fmt.Errorf("decodeEnvelope - json.Unmarshal: %w", err)
	}

	if p.EventID == uuid.Nil || p.EventType == "" {
		return dto.EventEnvelope{}, fmt.Errorf("decodeEnvelope: event_id and event_type are required")
	}

	return dto.EventEnvelope{
		EventID:       p.EventID,
		EventType:     p.EventType,
		AggregateID:   p.AggregateID,
		AggregateType: p.AggregateType,
		OccurredOn:    p.OccurredOn,
		Raw:           value,
	}, nil
}
