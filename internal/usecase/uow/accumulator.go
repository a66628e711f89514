package uow

import (
	"context"
	"sync"

	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
)

// Accumulator collects the domain events raised during one unit of work.
// Insertion order is preserved.
type Accumulator struct {
	mu     sync.Mutex
	events []entity.DomainEvent
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

func (a *Accumulator) Add(events ...entity.DomainEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, e := range events {
		if e != nil {
			a.events = append(a.events, e)
		}
	}
}

// Drain returns all collected events and empties the accumulator.
func (a *Accumulator) Drain() []entity.DomainEvent {
	a.mu.Lock()
	defer a.mu.Unlock()

	events := a.events
	a.events = nil

	return events
}

// Peek returns a copy of the collected events without removing them.
func (a *Accumulator) Peek() []entity.DomainEvent {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]entity.DomainEvent, len(a.events))
	copy(out, a.events)

	return out
}

func (a *Accumulator) Clear() {
	a.mu.Lock()
	a.events = nil
	a.mu.Unlock()
}

func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.events)
}

type accumulatorKey struct{}

func withAccumulator(ctx context.Context, acc *Accumulator) context.Context {
	return context.WithValue(ctx, accumulatorKey{}, acc)
}

// FromContext returns the accumulator of the unit of work running in ctx.
func FromContext(ctx context.Context) (*Accumulator, bool) {
	acc, ok := ctx.Value(accumulatorKey{}).(*Accumulator)
	return acc, ok
}

// Raise adds events to the unit of work bound to ctx.
func Raise(ctx context.Context, events ...entity.DomainEvent) error {
	acc, ok := FromContext(ctx)
	if !ok {
		return errs.ErrNoUnitOfWork
	}

	acc.Add(events...)

	return nil
}
