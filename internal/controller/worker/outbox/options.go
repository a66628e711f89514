package outbox

import (
	"time"

	"github.com/andreyxaxa/hr-outbox/pkg/backoff"
)

type Option func(*OutboxRelay)

func PollInterval(interval time.Duration) Option {
	return func(r *OutboxRelay) {
		r.pollInterval = interval
	}
}

func BatchSize(size int) Option {
	return func(r *OutboxRelay) {
		r.batchSize = size
	}
}

func MaxRetries(retries int) Option {
	return func(r *OutboxRelay) {
		r.maxRetries = retries
	}
}

func Backoff(schedule backoff.Schedule) Option {
	return func(r *OutboxRelay) {
		r.schedule = schedule
	}
}

// FetchTimeout bounds the due-messages query of a single tick.
func FetchTimeout(timeout time.Duration) Option {
	return func(r *OutboxRelay) {
		r.fetchTimeout = timeout
	}
}

// PersistTimeout bounds each status write made from a completion callback.
func PersistTimeout(timeout time.Duration) Option {
	return func(r *OutboxRelay) {
		r.persistTimeout = timeout
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *OutboxRelay) {
		r.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *OutboxRelay) {
		r.now = now
	}
}
