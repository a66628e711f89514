package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Position struct {
	aggregateRoot

	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	MinSalary decimal.Decimal `json:"min_salary"`
	MaxSalary decimal.Decimal `json:"max_salary"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewPosition(title string, minSalary, maxSalary decimal.Decimal, now time.Time) (*Position, error) {
	title = strings.TrimSpace(title)

	if title == "" {
		return nil, fmt.Errorf("position title is required: %w", errs.ErrValidation)
	}
	if minSalary.IsNegative() || maxSalary.LessThan(minSalary) {
		return nil, fmt.Errorf("salary band %s..%s is invalid: %w", minSalary, maxSalary, errs.ErrValidation)
	}

	p := &Position{
		ID:        uuid.New(),
		Title:     title,
		MinSalary: minSalary,
		MaxSalary: maxSalary,
		CreatedAt: now.UTC(),
	}

	p.raise(PositionCreated{
		BaseEvent: newBaseEvent(EventPositionCreated, AggregatePosition, p.ID, now),
		Title:     p.Title,
		MinSalary: p.MinSalary,
		MaxSalary: p.MaxSalary,
	})

	return p, nil
}
