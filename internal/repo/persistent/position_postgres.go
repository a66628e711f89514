package persistent

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/pkg/postgres"
)

const (
	// Table
	positionsTable = "positions"

	// Columns
	positionIDColumn        = "id"
	positionTitleColumn     = "title"
	positionMinSalaryColumn = "min_salary"
	positionMaxSalaryColumn = "max_salary"
	positionCreatedAtColumn = "created_at"
)

type PositionRepo struct {
	*postgres.Postgres
}

func NewPositionRepo(pg *postgres.Postgres) *PositionRepo {
	return &PositionRepo{pg}
}

func (r *PositionRepo) Create(ctx context.Context, p *entity.Position) error {
	sql, args, err := r.Builder.
		Insert(positionsTable).
		Columns(
			positionIDColumn,
			positionTitleColumn,
			positionMinSalaryColumn,
			positionMaxSalaryColumn,
			positionCreatedAtColumn,
		).
		Values(p.ID, p.Title, p.MinSalary.String(), p.MaxSalary.String(), p.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("PositionRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("PositionRepo - Create - executor.Exec: %w", mapPgError(err))
	}

	return nil
}
