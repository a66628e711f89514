package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/internal/repo"
	"github.com/andreyxaxa/hr-outbox/internal/usecase"
	"github.com/andreyxaxa/hr-outbox/internal/usecase/uow"
	"github.com/google/uuid"
)

type EmployeeUseCase struct {
	employeeRepo repo.EmployeeRepo
	uow          usecase.UnitOfWork

	now func() time.Time
}

func New(employeeRepo repo.EmployeeRepo, u usecase.UnitOfWork) *EmployeeUseCase {
	return &EmployeeUseCase{
		employeeRepo: employeeRepo,
		uow:          u,
		now:          time.Now,
	}
}

func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployee) (*entity.Employee, error) {
	e, err := entity.NewEmployee(in.FirstName, in.LastName, in.Email, in.DepartmentID, in.PositionID, uc.now())
	if err != nil {
		return nil, fmt.Errorf("EmployeeUseCase - Create - entity.NewEmployee: %w", err)
	}

	err = uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.employeeRepo.Create(ctx, e); err != nil {
			return fmt.Errorf("EmployeeUseCase - Create - uc.employeeRepo.Create: %w", err)
		}

		return uow.Raise(ctx, e.PullEvents()...)
	})
	if err != nil {
		return nil, fmt.Errorf("EmployeeUseCase - Create - uc.uow.Do: %w", err)
	}

	return e, nil
}

func (uc *EmployeeUseCase) ChangeStatus(ctx context.Context, id uuid.UUID, status entity.EmployeeStatus) (*entity.Employee, error) {
	var e *entity.Employee

	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		var err error

		// 1. блокируем строку до конца транзакции
		e, err = uc.employeeRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("EmployeeUseCase - ChangeStatus - uc.employeeRepo.GetByIDForUpdate: %w", err)
		}

		// 2. переход статуса (поднимает EmployeeStatusChanged)
		if err = e.ChangeStatus(status, uc.now()); err != nil {
			return fmt.Errorf("EmployeeUseCase - ChangeStatus - e.ChangeStatus: %w", err)
		}

		// 3. сохраняем
		if err = uc.employeeRepo.UpdateStatus(ctx, e); err != nil {
			return fmt.Errorf("EmployeeUseCase - ChangeStatus - uc.employeeRepo.UpdateStatus: %w", err)
		}

		return uow.Raise(ctx, e.PullEvents()...)
	})
	if err != nil {
		return nil, fmt.Errorf("EmployeeUseCase - ChangeStatus - uc.uow.Do: %w", err)
	}

	return e, nil
}

func (uc *EmployeeUseCase) Get(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	e, err := uc.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("EmployeeUseCase - Get - uc.employeeRepo.GetByID: %w", err)
	}

	return e, nil
}
