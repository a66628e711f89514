package uow

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type FlushMode string

const (
	// FlushAfterCommit пишет outbox во второй транзакции после коммита бизнес-транзакции.
	FlushAfterCommit FlushMode = "after_commit"
	// FlushInTransaction пишет outbox в той же транзакции, что и бизнес-изменения.
	FlushInTransaction FlushMode = "in_transaction"
)

func ParseFlushMode(s string) (FlushMode, error) {
	switch m := FlushMode(s); m {
	case FlushAfterCommit, FlushInTransaction:
		return m, nil
	default:
		return "", fmt.Errorf("unknown outbox flush mode %q", s)
	}
}

type (
	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}

	EventWriter interface {
		Write(ctx context.Context, events []entity.DomainEvent) error
	}
)

type UnitOfWork struct {
	transactor Transactor
	writer     EventWriter
	mode       FlushMode
	timeout    time.Duration
	logger     logger.Interface
}

func New(transactor Transactor, writer EventWriter, mode FlushMode, flushTimeout time.Duration, l logger.Interface) *UnitOfWork {
	return &UnitOfWork{
		transactor: transactor,
		writer:     writer,
		mode:       mode,
		timeout:    flushTimeout,
		logger:     l,
	}
}

// Do runs fn in a business transaction with a fresh event accumulator bound to ctx.
// The accumulator is cleared on every exit path. Called inside another Do, fn joins
// the outer unit of work.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := FromContext(ctx); ok {
		return fn(ctx)
	}

	acc := NewAccumulator()
	defer acc.Clear()

	ctx = withAccumulator(ctx, acc)

	if u.mode == FlushInTransaction {
		err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := fn(ctx); err != nil {
				return err
			}

			events := acc.Drain()
			if len(events) == 0 {
				return nil
			}

			if err := u.writer.Write(ctx, events); err != nil {
				return fmt.Errorf("UnitOfWork - Do - u.writer.Write: %w", err)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("UnitOfWork - Do - u.transactor.WithinTransaction: %w", err)
		}

		return nil
	}

	// 1. бизнес-транзакция
	err := u.transactor.WithinTransaction(ctx, fn)
	if err != nil {
		// события откаченной транзакции не публикуются
		return fmt.Errorf("UnitOfWork - Do - u.transactor.WithinTransaction: %w", err)
	}

	// 2. после коммита - outbox
	u.flush(ctx, acc)

	return nil
}

// flush не возвращает ошибку: бизнес-изменения уже закоммичены.
func (u *UnitOfWork) flush(ctx context.Context, acc *Accumulator) {
	events := acc.Drain()
	if len(events) == 0 {
		return
	}

	// отмена запроса не должна обрывать запись уже закоммиченных событий
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
	defer cancel()

	flushCtx, span := otel.Tracer(tracerName).Start(flushCtx, "outbox.flush")
	span.SetAttributes(attribute.Int("outbox.events", len(events)))
	defer span.End()

	err := u.transactor.WithinTransaction(flushCtx, func(ctx context.Context) error {
		return u.writer.Write(ctx, events)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "outbox flush failed")

		u.logger.Error(err, "UnitOfWork - flush - %d events were not written to outbox", len(events))
	}
}

const tracerName = "github.com/andreyxaxa/hr-outbox/internal/usecase/uow"
