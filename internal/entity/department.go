package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/google/uuid"
)

type Department struct {
	aggregateRoot

	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

func NewDepartment(name, code string, now time.Time) (*Department, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))

	if name == "" || code == "" {
		return nil, fmt.Errorf("department name and code are required: %w", errs.ErrValidation)
	}

	d := &Department{
		ID:        uuid.New(),
		Name:      name,
		Code:      code,
		CreatedAt: now.UTC(),
	}

	d.raise(DepartmentCreated{
		BaseEvent: newBaseEvent(EventDepartmentCreated, AggregateDepartment, d.ID, now),
		Name:      d.Name,
		Code:      d.Code,
	})

	return d, nil
}
