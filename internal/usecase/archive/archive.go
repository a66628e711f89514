package archive

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/andreyxaxa/hr-outbox/internal/repo"
)

type ArchiveUseCase struct {
	archive repo.EventArchiveRepo
}

func New(archive repo.EventArchiveRepo) *ArchiveUseCase {
	return &ArchiveUseCase{archive: archive}
}

func (uc *ArchiveUseCase) Handle(ctx context.Context, event dto.EventEnvelope) error {
	err := uc.archive.Put(ctx, Key(event), event.Raw)
	if err != nil {
		return fmt.Errorf("ArchiveUseCase - Handle - uc.archive.Put: %w", err)
	}

	return nil
}

// Key раскладывает события по типу и дате возникновения: events/<type>/<yyyy>/<mm>/<dd>/<event_id>.json
func Key(event dto.EventEnvelope) string {
	at := event.OccurredOn.UTC()

	return fmt.Sprintf("events/%s/%04d/%02d/%02d/%s.json",
		event.EventType, at.Year(), int(at.Month()), at.Day(), event.EventID)
}
