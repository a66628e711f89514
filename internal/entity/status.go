package entity

import "github.com/andreyxaxa/hr-outbox/pkg/types/errs"

// OutboxStatus - жизненный цикл сообщения outbox.
//
//	PENDING -> SENT | FAILED | DEAD_LETTER
//	FAILED  -> SENT | FAILED | DEAD_LETTER
//
// SENT и DEAD_LETTER терминальные.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "PENDING"
	OutboxFailed     OutboxStatus = "FAILED"
	OutboxSent       OutboxStatus = "SENT"
	OutboxDeadLetter OutboxStatus = "DEAD_LETTER"
)

func (s OutboxStatus) IsTerminal() bool {
	return s == OutboxSent || s == OutboxDeadLetter
}

// DueStatuses - статусы, которые relay выбирает для отправки.
func DueStatuses() []OutboxStatus {
	return []OutboxStatus{OutboxPending, OutboxFailed}
}

type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "ACTIVE"
	EmployeeOnLeave    EmployeeStatus = "ON_LEAVE"
	EmployeeSuspended  EmployeeStatus = "SUSPENDED"
	EmployeeTerminated EmployeeStatus = "TERMINATED"
)

func ParseEmployeeStatus(s string) (EmployeeStatus, error) {
	switch st := EmployeeStatus(s); st {
	case EmployeeActive, EmployeeOnLeave, EmployeeSuspended, EmployeeTerminated:
		return st, nil
	default:
		return "", errs.ErrInvalidEmployeeStatus
	}
}
