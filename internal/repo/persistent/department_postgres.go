package persistent

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/pkg/postgres"
)

const (
	// Table
	departmentsTable = "departments"

	// Columns
	departmentIDColumn        = "id"
	departmentNameColumn      = "name"
	departmentCodeColumn      = "code"
	departmentCreatedAtColumn = "created_at"
)

type DepartmentRepo struct {
	*postgres.Postgres
}

func NewDepartmentRepo(pg *postgres.Postgres) *DepartmentRepo {
	return &DepartmentRepo{pg}
}

func (r *DepartmentRepo) Create(ctx context.Context, d *entity.Department) error {
	sql, args, err := r.Builder.
		Insert(departmentsTable).
		Columns(
			departmentIDColumn,
			departmentNameColumn,
			departmentCodeColumn,
			departmentCreatedAtColumn,
		).
		Values(d.ID, d.Name, d.Code, d.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("DepartmentRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("DepartmentRepo - Create - executor.Exec: %w", mapPgError(err))
	}

	return nil
}
