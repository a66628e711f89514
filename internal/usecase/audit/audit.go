package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/andreyxaxa/hr-outbox/internal/repo"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
)

// AuditUseCase writes one audit log line per distinct event. Redelivered events are skipped.
type AuditUseCase struct {
	processed repo.ProcessedEventRepo
	logger    logger.Interface
}

func New(processed repo.ProcessedEventRepo, l logger.Interface) *AuditUseCase {
	return &AuditUseCase{
		processed: processed,
		logger:    l,
	}
}

func (uc *AuditUseCase) Handle(ctx context.Context, event dto.EventEnvelope) error {
	first, err := uc.processed.MarkProcessed(ctx, event.EventID)
	if err != nil {
		return fmt.Errorf("AuditUseCase - Handle - uc.processed.MarkProcessed: %w", err)
	}

	if !first {
		uc.logger.Debug("audit: duplicate event %s skipped", event.EventID)

		return nil
	}

	uc.logger.Info(
		"audit: event_type=%s aggregate_type=%s aggregate_id=%s event_id=%s occurred_on=%s",
		event.EventType, event.AggregateType, event.AggregateID, event.EventID,
		event.OccurredOn.UTC().Format(time.RFC3339Nano),
	)

	return nil
}
