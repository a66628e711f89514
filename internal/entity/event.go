package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventEmployeeCreated       EventType = "EmployeeCreated"
	EventEmployeeStatusChanged EventType = "EmployeeStatusChanged"
	EventDepartmentCreated     EventType = "DepartmentCreated"
	EventPositionCreated       EventType = "PositionCreated"
)

// EventTypes returns the closed set of event types raised by HR aggregates.
func EventTypes() []EventType {
	return []EventType{
		EventEmployeeCreated,
		EventEmployeeStatusChanged,
		EventDepartmentCreated,
		EventPositionCreated,
	}
}

type AggregateType string

const (
	AggregateEmployee   AggregateType = "Employee"
	AggregateDepartment AggregateType = "Department"
	AggregatePosition   AggregateType = "Position"
)

// DomainEvent is an immutable fact raised by an HR aggregate.
type DomainEvent interface {
	EventID() uuid.UUID
	OccurredOn() time.Time
	EventType() EventType
	AggregateID() uuid.UUID
	AggregateType() AggregateType
}

// BaseEvent carries the fields every event shares; variants embed it.
type BaseEvent struct {
	ID        uuid.UUID     `json:"event_id"`
	At        time.Time     `json:"occurred_on"`
	Type      EventType     `json:"event_type"`
	Aggregate uuid.UUID     `json:"aggregate_id"`
	Kind      AggregateType `json:"aggregate_type"`
}

func newBaseEvent(t EventType, kind AggregateType, aggregateID uuid.UUID, at time.Time) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		At:        at.UTC(),
		Type:      t,
		Aggregate: aggregateID,
		Kind:      kind,
	}
}

func (e BaseEvent) EventID() uuid.UUID           { return e.ID }
func (e BaseEvent) OccurredOn() time.Time        { return e.At }
func (e BaseEvent) EventType() EventType         { return e.Type }
func (e BaseEvent) AggregateID() uuid.UUID       { return e.Aggregate }
func (e BaseEvent) AggregateType() AggregateType { return e.Kind }

// aggregateRoot records events raised by an entity until they are pulled.
type aggregateRoot struct {
	events []DomainEvent
}

func (a *aggregateRoot) raise(e DomainEvent) {
	a.events = append(a.events, e)
}

// PullEvents hands over the raised events once; a second call returns nothing.
func (a *aggregateRoot) PullEvents() []DomainEvent {
	events := a.events
	a.events = nil

	return events
}
