package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/internal/repo"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
	"github.com/google/uuid"
)

type OutboxUseCase struct {
	outboxRepo repo.OutboxRepo
	logger     logger.Interface

	now func() time.Time
}

func New(outboxRepo repo.OutboxRepo, l logger.Interface) *OutboxUseCase {
	return &OutboxUseCase{
		outboxRepo: outboxRepo,
		logger:     l,
		now:        time.Now,
	}
}

// Write сохраняет события как PENDING-сообщения, по одному insert на событие.
func (uc *OutboxUseCase) Write(ctx context.Context, events []entity.DomainEvent) error {
	now := uc.now()

	for _, event := range events {
		msg, err := entity.NewOutboxMessage(event, now)
		if err != nil {
			return fmt.Errorf("OutboxUseCase - Write - entity.NewOutboxMessage: %w", err)
		}

		if err := uc.outboxRepo.Create(ctx, msg); err != nil {
			return fmt.Errorf("OutboxUseCase - Write - uc.outboxRepo.Create: %w", err)
		}

		uc.logger.Info(
			"outbox message persisted: aggregate_type=%s aggregate_id=%s event_type=%s message_id=%s",
			msg.AggregateType, msg.AggregateID, msg.EventType, msg.ID,
		)
	}

	return nil
}

func (uc *OutboxUseCase) FetchDue(ctx context.Context, now time.Time, limit int) ([]*entity.OutboxMessage, error) {
	msgs, err := uc.outboxRepo.FindDue(ctx, entity.DueStatuses(), now, limit)
	if err != nil {
		return nil, fmt.Errorf("OutboxUseCase - FetchDue - uc.outboxRepo.FindDue: %w", err)
	}

	return msgs, nil
}

func (uc *OutboxUseCase) Save(ctx context.Context, msg *entity.OutboxMessage) error {
	err := uc.outboxRepo.Save(ctx, msg)
	if err != nil {
		return fmt.Errorf("OutboxUseCase - Save - uc.outboxRepo.Save: %w", err)
	}

	return nil
}

func (uc *OutboxUseCase) GetMessage(ctx context.Context, id uuid.UUID) (*entity.OutboxMessage, error) {
	msg, err := uc.outboxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("OutboxUseCase - GetMessage - uc.outboxRepo.GetByID: %w", err)
	}

	return msg, nil
}
