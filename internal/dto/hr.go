package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateEmployee struct {
	FirstName    string
	LastName     string
	Email        string
	DepartmentID *uuid.UUID
	PositionID   *uuid.UUID
}

type CreateDepartment struct {
	Name string
	Code string
}

type CreatePosition struct {
	Title     string
	MinSalary decimal.Decimal
	MaxSalary decimal.Decimal
}
