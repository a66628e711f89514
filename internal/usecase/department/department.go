package department

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/internal/repo"
	"github.com/andreyxaxa/hr-outbox/internal/usecase"
	"github.com/andreyxaxa/hr-outbox/internal/usecase/uow"
)

type DepartmentUseCase struct {
	departmentRepo repo.DepartmentRepo
	uow            usecase.UnitOfWork

	now func() time.Time
}

func New(departmentRepo repo.DepartmentRepo, u usecase.UnitOfWork) *DepartmentUseCase {
	return &DepartmentUseCase{
		departmentRepo: departmentRepo,
		uow:            u,
		now:            time.Now,
	}
}

func (uc *DepartmentUseCase) Create(ctx context.Context, in dto.CreateDepartment) (*entity.Department, error) {
	d, err := entity.NewDepartment(in.Name, in.Code, uc.now())
	if err != nil {
		return nil, fmt.Errorf("DepartmentUseCase - Create - entity.NewDepartment: %w", err)
	}

	err = uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.departmentRepo.Create(ctx, d); err != nil {
			return fmt.Errorf("DepartmentUseCase - Create - uc.departmentRepo.Create: %w", err)
		}

		return uow.Raise(ctx, d.PullEvents()...)
	})
	if err != nil {
		return nil, fmt.Errorf("DepartmentUseCase - Create - uc.uow.Do: %w", err)
	}

	return d, nil
}
