package persistent

import (
	"errors"
	"fmt"

	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError переводит нарушения ограничений в доменные ошибки.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, errs.ErrAlreadyExists)
	case pgForeignKeyViolation:
		return fmt.Errorf("%s references a missing record: %w", pgErr.ConstraintName, errs.ErrValidation)
	default:
		return err
	}
}
