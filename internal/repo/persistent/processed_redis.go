package persistent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const processedKeyPrefix = "hr-outbox:processed:"

// ProcessedEventRepo remembers consumed event ids so redelivered events can be skipped.
type ProcessedEventRepo struct {
	client redis.UniversalClient
	group  string
	ttl    time.Duration
}

func NewProcessedEventRepo(client redis.UniversalClient, group string, ttl time.Duration) *ProcessedEventRepo {
	return &ProcessedEventRepo{client: client, group: group, ttl: ttl}
}

func (r *ProcessedEventRepo) MarkProcessed(ctx context.Context, eventID uuid.UUID) (bool, error) {
	key := processedKeyPrefix + r.group + ":" + eventID.String()

	first, err := r.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339Nano), r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("ProcessedEventRepo - MarkProcessed - r.client.SetNX: %w", err)
	}

	return first, nil
}
