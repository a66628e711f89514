package entity

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/google/uuid"
)

type Employee struct {
	aggregateRoot

	ID           uuid.UUID      `json:"id"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	DepartmentID *uuid.UUID     `json:"department_id,omitempty"`
	PositionID   *uuid.UUID     `json:"position_id,omitempty"`
	Status       EmployeeStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewEmployee creates an ACTIVE employee and raises EmployeeCreated.
func NewEmployee(firstName, lastName, email string, departmentID, positionID *uuid.UUID, now time.Time) (*Employee, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.ToLower(strings.TrimSpace(email))

	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("first and last name are required: %w", errs.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email %q: %w", email, errs.ErrValidation)
	}

	e := &Employee{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		DepartmentID: departmentID,
		PositionID:   positionID,
		Status:       EmployeeActive,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}

	e.raise(EmployeeCreated{
		BaseEvent:    newBaseEvent(EventEmployeeCreated, AggregateEmployee, e.ID, now),
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		DepartmentID: e.DepartmentID,
		PositionID:   e.PositionID,
		Status:       e.Status,
	})

	return e, nil
}

// ChangeStatus moves the employee to status and raises EmployeeStatusChanged.
func (e *Employee) ChangeStatus(status EmployeeStatus, now time.Time) error {
	if e.Status == EmployeeTerminated {
		return errs.ErrEmployeeTerminated
	}
	if e.Status == status {
		return errs.ErrStatusUnchanged
	}

	old := e.Status
	e.Status = status
	e.UpdatedAt = now.UTC()

	e.raise(EmployeeStatusChanged{
		BaseEvent: newBaseEvent(EventEmployeeStatusChanged, AggregateEmployee, e.ID, now),
		OldStatus: old,
		NewStatus: status,
	})

	return nil
}
