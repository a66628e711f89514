package response

type OutboxMessage struct {
	ID            string  `json:"id"`
	AggregateID   string  `json:"aggregate_id"`
	AggregateType string  `json:"aggregate_type"`
	EventType     string  `json:"event_type"`
	Status        string  `json:"status"`
	OccurredOn    string  `json:"occurred_on"`
	ProcessedAt   *string `json:"processed_at,omitempty"`
	RetryAttempts int     `json:"retry_attempts"`
	NextAttemptAt *string `json:"next_attempt_at,omitempty"`
}
