package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/pkg/postgres"
	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	employeesTable = "employees"

	// Columns
	employeeIDColumn           = "id"
	employeeFirstNameColumn    = "first_name"
	employeeLastNameColumn     = "last_name"
	employeeEmailColumn        = "email"
	employeeDepartmentIDColumn = "department_id"
	employeePositionIDColumn   = "position_id"
	employeeStatusColumn       = "status"
	employeeCreatedAtColumn    = "created_at"
	employeeUpdatedAtColumn    = "updated_at"
)

var employeeColumns = []string{
	employeeIDColumn,
	employeeFirstNameColumn,
	employeeLastNameColumn,
	employeeEmailColumn,
	employeeDepartmentIDColumn,
	employeePositionIDColumn,
	employeeStatusColumn,
	employeeCreatedAtColumn,
	employeeUpdatedAtColumn,
}

type EmployeeRepo struct {
	*postgres.Postgres
}

func NewEmployeeRepo(pg *postgres.Postgres) *EmployeeRepo {
	return &EmployeeRepo{pg}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	sql, args, err := r.Builder.
		Insert(employeesTable).
		Columns(employeeColumns...).
		Values(
			e.ID,
			e.FirstName,
			e.LastName,
			e.Email,
			e.DepartmentID,
			e.PositionID,
			string(e.Status),
			e.CreatedAt,
			e.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("EmployeeRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("EmployeeRepo - Create - executor.Exec: %w", mapPgError(err))
	}

	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	return r.get(ctx, id, false)
}

func (r *EmployeeRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	return r.get(ctx, id, true)
}

func (r *EmployeeRepo) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*entity.Employee, error) {
	builder := r.Builder.
		Select(employeeColumns...).
		From(employeesTable).
		Where(squirrel.Eq{employeeIDColumn: id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("EmployeeRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var (
		e      entity.Employee
		status string
	)
	err = executor.QueryRow(ctx, sql, args...).Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.DepartmentID,
		&e.PositionID,
		&status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("EmployeeRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("EmployeeRepo - GetByID - executor.QueryRow: %w", err)
	}

	e.Status = entity.EmployeeStatus(status)

	return &e, nil
}

func (r *EmployeeRepo) UpdateStatus(ctx context.Context, e *entity.Employee) error {
	sql, args, err := r.Builder.
		Update(employeesTable).
		Set(employeeStatusColumn, string(e.Status)).
		Set(employeeUpdatedAtColumn, e.UpdatedAt).
		Where(squirrel.Eq{employeeIDColumn: e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("EmployeeRepo - UpdateStatus - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("EmployeeRepo - UpdateStatus - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("EmployeeRepo - UpdateStatus: %w", errs.ErrRecordNotFound)
	}

	return nil
}
