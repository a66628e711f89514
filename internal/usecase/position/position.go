package position

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

type PositionUseCase struct {
	positionRepo repo.PositionRepo
	uow          usecase.UnitOfWork

	now func() time.Time
}

func New(positionRepo repo.PositionRepo, u usecase.UnitOfWork) *PositionUseCase {
	return &PositionUseCase{
		positionRepo: positionRepo,
		uow:          u,
		now:          time.Now,
	}
}

func (uc *PositionUseCase) Create(ctx context.Context, in dto.CreatePosition) (*entity.Position, error) {
	p, err := entity.NewPosition(in.Title, in.MinSalary, in.MaxSalary, uc.now())
	if err != nil {
		return nil, fmt.Errorf("PositionUseCase - Create - entity.NewPosition: %w", err)
	}

	err = uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.positionRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("PositionUseCase - Create - uc.positionRepo.Create: %w", err)
		}

		return uow.Raise(ctx, p.PullEvents()...)
	})
	if err != nil {
		return nil, fmt.Errorf("PositionUseCase - Create - uc.uow.Do: %w", err)
	}

	return p, nil
}
