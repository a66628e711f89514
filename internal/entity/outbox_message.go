package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/google/uuid"
)

// OutboxMessage - персистентная запись события, ожидающего доставки в брокер.
type OutboxMessage struct {
	ID            uuid.UUID    `json:"id"`
	AggregateID   uuid.UUID    `json:"aggregate_id"`
	AggregateType string       `json:"aggregate_type"`
	EventType     string       `json:"event_type"`
	Payload       []byte       `json:"payload"`
	Status        OutboxStatus `json:"status"`
	OccurredOn    time.Time    `json:"occurred_on"`
	ProcessedAt   *time.Time   `json:"processed_at,omitempty"`
	RetryAttempts int          `json:"retry_attempts"`
	NextAttemptAt *time.Time   `json:"next_attempt_at,omitempty"`
}

// NewOutboxMessage serializes event into a PENDING message that is due at now.
// The message id is the event id, so a consumer can deduplicate on either.
func NewOutboxMessage(event DomainEvent, now time.Time) (*OutboxMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("entity - NewOutboxMessage - json.Marshal: %w", err)
	}

	next := now.UTC()

	return &OutboxMessage{
		ID:            event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: string(event.AggregateType()),
		EventType:     string(event.EventType()),
		Payload:       payload,
		Status:        OutboxPending,
		OccurredOn:    event.OccurredOn(),
		RetryAttempts: 0,
		NextAttemptAt: &next,
	}, nil
}

// MarkSent records a broker acknowledgement.
func (m *OutboxMessage) MarkSent(now time.Time) error {
	if m.Status.IsTerminal() {
		return errs.ErrOutboxMessageTerminal
	}

	processed := now.UTC()
	m.Status = OutboxSent
	m.ProcessedAt = &processed
	m.RetryAttempts = 0
	m.NextAttemptAt = nil

	return nil
}

// MarkUnroutable records that no destination is configured for the event type.
// Attempts and the next attempt time stay as they are, so the message is picked up
// again on later ticks and goes out once a route is configured.
func (m *OutboxMessage) MarkUnroutable(now time.Time) error {
	if m.Status.IsTerminal() {
		return errs.ErrOutboxMessageTerminal
	}

	processed := now.UTC()
	m.Status = OutboxFailed
	m.ProcessedAt = &processed

	return nil
}

// RecordFailure counts a failed delivery. It returns true when the message
// reached maxRetries and was dead-lettered.
func (m *OutboxMessage) RecordFailure(now time.Time, maxRetries int, delay func(attempt int) time.Duration) (bool, error) {
	if m.Status.IsTerminal() {
		return false, errs.ErrOutboxMessageTerminal
	}

	processed := now.UTC()
	m.RetryAttempts++
	m.ProcessedAt = &processed

	if m.RetryAttempts >= maxRetries {
		m.Status = OutboxDeadLetter
		m.NextAttemptAt = nil

		return true, nil
	}

	next := processed.Add(delay(m.RetryAttempts))
	m.Status = OutboxFailed
	m.NextAttemptAt = &next

	return false, nil
}
