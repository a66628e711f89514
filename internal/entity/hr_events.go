package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmployeeCreated struct {
	BaseEvent
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	DepartmentID *uuid.UUID     `json:"department_id,omitempty"`
	PositionID   *uuid.UUID     `json:"position_id,omitempty"`
	Status       EmployeeStatus `json:"status"`
}

type EmployeeStatusChanged struct {
	BaseEvent
	OldStatus EmployeeStatus `json:"old_status"`
	NewStatus EmployeeStatus `json:"new_status"`
}

type DepartmentCreated struct {
	BaseEvent
	Name string `json:"name"`
	Code string `json:"code"`
}

type PositionCreated struct {
	BaseEvent
	Title     string          `json:"title"`
	MinSalary decimal.Decimal `json:"min_salary"`
	MaxSalary decimal.Decimal `json:"max_salary"`
}

var (
	_ DomainEvent = EmployeeCreated{}
	_ DomainEvent = EmployeeStatusChanged{}
	_ DomainEvent = DepartmentCreated{}
	_ DomainEvent = PositionCreated{}
)
