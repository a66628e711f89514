package usecase

import (
	"context"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/google/uuid"
)

type (
	UnitOfWork interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}

	EmployeeUseCase interface {
		Create(ctx context.Context, in dto.CreateEmployee) (*entity.Employee, error)
		ChangeStatus(ctx context.Context, id uuid.UUID, status entity.EmployeeStatus) (*entity.Employee, error)
		Get(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	}

	DepartmentUseCase interface {
		Create(ctx context.Context, in dto.CreateDepartment) (*entity.Department, error)
	}

	PositionUseCase interface {
		Create(ctx context.Context, in dto.CreatePosition) (*entity.Position, error)
	}

	OutboxUseCase interface {
		Write(ctx context.Context, events []entity.DomainEvent) error
		FetchDue(ctx context.Context, now time.Time, limit int) ([]*entity.OutboxMessage, error)
		Save(ctx context.Context, msg *entity.OutboxMessage) error
		GetMessage(ctx context.Context, id uuid.UUID) (*entity.OutboxMessage, error)
	}

	// EventHandler обрабатывает одно событие, прочитанное из брокера.
	EventHandler interface {
		Handle(ctx context.Context, event dto.EventEnvelope) error
	}
)
