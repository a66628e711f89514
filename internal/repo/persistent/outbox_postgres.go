package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/pkg/postgres"
	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	outboxTable = "outbox_messages"

	// Columns
	outboxIDColumn            = "id"
	outboxAggregateIDColumn   = "aggregate_id"
	outboxAggregateTypeColumn = "aggregate_type"
	outboxEventTypeColumn     = "event_type"
	outboxPayloadColumn       = "payload"
	outboxStatusColumn        = "status"
	outboxOccurredOnColumn    = "occurred_on"
	outboxProcessedAtColumn   = "processed_at"
	outboxRetryAttemptsColumn = "retry_attempts"
	outboxNextAttemptAtColumn = "next_attempt_at"
)

var outboxColumns = []string{
	outboxIDColumn,
	outboxAggregateIDColumn,
	outboxAggregateTypeColumn,
	outboxEventTypeColumn,
	outboxPayloadColumn,
	outboxStatusColumn,
	outboxOccurredOnColumn,
	outboxProcessedAtColumn,
	outboxRetryAttemptsColumn,
	outboxNextAttemptAtColumn,
}

type OutboxRepo struct {
	*postgres.Postgres
}

func NewOutboxRepo(pg *postgres.Postgres) *OutboxRepo {
	return &OutboxRepo{pg}
}

func (r *OutboxRepo) Create(ctx context.Context, msg *entity.OutboxMessage) error {
	sql, args, err := r.Builder.
		Insert(outboxTable).
		Columns(outboxColumns...).
		Values(
			msg.ID,
			msg.AggregateID,
			msg.AggregateType,
			msg.EventType,
			string(msg.Payload),
			string(msg.Status),
			msg.OccurredOn,
			msg.ProcessedAt,
			msg.RetryAttempts,
			msg.NextAttemptAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("OutboxRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OutboxRepo - Create - executor.Exec: %w", mapPgError(err))
	}

	return nil
}

// Save пишет изменяемую часть сообщения: статус, processed_at, счетчик и время следующей попытки.
// Строка в SENT или DEAD_LETTER не меняется: Save вернет errs.ErrOutboxMessageTerminal.
func (r *OutboxRepo) Save(ctx context.Context, msg *entity.OutboxMessage) error {
	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxStatusColumn, string(msg.Status)).
		Set(outboxProcessedAtColumn, msg.ProcessedAt).
		Set(outboxRetryAttemptsColumn, msg.RetryAttempts).
		Set(outboxNextAttemptAtColumn, msg.NextAttemptAt).
		Where(squirrel.Eq{outboxIDColumn: msg.ID}).
		Where(squirrel.NotEq{outboxStatusColumn: []string{string(entity.OutboxSent), string(entity.OutboxDeadLetter)}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("OutboxRepo - Save - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OutboxRepo - Save - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// либо строки нет, либо она уже терминальная
		if _, err := r.GetByID(ctx, msg.ID); err != nil {
			return fmt.Errorf("OutboxRepo - Save - r.GetByID: %w", err)
		}

		return fmt.Errorf("OutboxRepo - Save - message %s: %w", msg.ID, errs.ErrOutboxMessageTerminal)
	}

	return nil
}

// FindDue возвращает до limit сообщений в статусах statuses с next_attempt_at <= now,
// старые события первыми.
func (r *OutboxRepo) FindDue(ctx context.Context, statuses []entity.OutboxStatus, now time.Time, limit int) ([]*entity.OutboxMessage, error) {
	if len(statuses) == 0 || limit <= 0 {
		return nil, nil
	}

	st := make([]string, 0, len(statuses))
	for _, s := range statuses {
		st = append(st, string(s))
	}

	sql, args, err := r.Builder.
		Select(outboxColumns...).
		From(outboxTable).
		Where(squirrel.And{
			squirrel.Eq{outboxStatusColumn: st},
			squirrel.LtOrEq{outboxNextAttemptAtColumn: now},
		}).
		OrderBy(outboxOccurredOnColumn + " ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("OutboxRepo - FindDue - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("OutboxRepo - FindDue - executor.Query: %w", err)
	}
	defer rows.Close()

	msgs := make([]*entity.OutboxMessage, 0, limit)
	for rows.Next() {
		msg, err := scanOutboxMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("OutboxRepo - FindDue - scanOutboxMessage: %w", err)
		}
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("OutboxRepo - FindDue - rows.Err: %w", err)
	}

	return msgs, nil
}

func (r *OutboxRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.OutboxMessage, error) {
	sql, args, err := r.Builder.
		Select(outboxColumns...).
		From(outboxTable).
		Where(squirrel.Eq{outboxIDColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("OutboxRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	msg, err := scanOutboxMessage(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("OutboxRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("OutboxRepo - GetByID - executor.QueryRow: %w", err)
	}

	return msg, nil
}

func scanOutboxMessage(row pgx.Row) (*entity.OutboxMessage, error) {
	var (
		msg     entity.OutboxMessage
		payload string
		status  string
	)

	err := row.Scan(
		&msg.ID,
		&msg.AggregateID,
		&msg.AggregateType,
		&msg.EventType,
		&payload,
		&status,
		&msg.OccurredOn,
		&msg.ProcessedAt,
		&msg.RetryAttempts,
		&msg.NextAttemptAt,
	)
	if err != nil {
		return nil, err
	}

	msg.Payload = []byte(payload)
	msg.Status = entity.OutboxStatus(status)

	return &msg, nil
}
