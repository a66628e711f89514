package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateDepartment struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type CreatePosition struct {
	Title     string          `json:"title"`
	MinSalary decimal.Decimal `json:"min_salary" swaggertype:"string" example:"85000.00"`
	MaxSalary decimal.Decimal `json:"max_salary" swaggertype:"string" example:"120000.00"`
}

type CreateEmployee struct {
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty" swaggertype:"string"`
	PositionID   *uuid.UUID `json:"position_id,omitempty" swaggertype:"string"`
}

type ChangeEmployeeStatus struct {
	Status string `json:"status" example:"ON_LEAVE"`
}
