package repo

import (
	"context"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/google/uuid"
)

type (
	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}

	OutboxRepo interface {
		Create(ctx context.Context, msg *entity.OutboxMessage) error
		Save(ctx context.Context, msg *entity.OutboxMessage) error
		FindDue(ctx context.Context, statuses []entity.OutboxStatus, now time.Time, limit int) ([]*entity.OutboxMessage, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entity.OutboxMessage, error)
	}

	EmployeeRepo interface {
		Create(ctx context.Context, e *entity.Employee) error
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
		GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
		UpdateStatus(ctx context.Context, e *entity.Employee) error
	}

	DepartmentRepo interface {
		Create(ctx context.Context, d *entity.Department) error
	}

	PositionRepo interface {
		Create(ctx context.Context, p *entity.Position) error
	}

	EventArchiveRepo interface {
		Put(ctx context.Context, key string, data []byte) error
	}

	ProcessedEventRepo interface {
		// MarkProcessed returns false when the event was already marked.
		MarkProcessed(ctx context.Context, eventID uuid.UUID) (bool, error)
	}
)
