package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/internal/infrastructure"
	"github.com/andreyxaxa/hr-outbox/internal/usecase"
	"github.com/andreyxaxa/hr-outbox/pkg/backoff"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	_defaultPollInterval   = 2 * time.Second
	_defaultBatchSize      = 100
	_defaultMaxRetries     = 5
	_defaultFetchTimeout   = 10 * time.Second
	_defaultPersistTimeout = 5 * time.Second

	tracerName = "github.com/andreyxaxa/hr-outbox/internal/controller/worker/outbox"
)

type OutboxRelay struct {
	outbox usecase.OutboxUseCase
	es     infrastructure.EventSender
	router infrastructure.DestinationResolver
	logger logger.Interface

	metrics  *Metrics
	tracer   trace.Tracer
	schedule backoff.Schedule

	pollInterval   time.Duration
	fetchTimeout   time.Duration
	persistTimeout time.Duration
	batchSize      int
	maxRetries     int
	now            func() time.Time

	// id сообщений, отправка которых еще не завершилась
	inflight sync.Map
	// id сообщений без маршрута, о которых уже сообщили
	unroutableSeen  sync.Map
	unroutableCount atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
	ticking atomic.Bool
}

func New(
	outbox usecase.OutboxUseCase,
	es infrastructure.EventSender,
	router infrastructure.DestinationResolver,
	l logger.Interface,
	opts ...Option,
) *OutboxRelay {
	r := &OutboxRelay{
		outbox:         outbox,
		es:             es,
		router:         router,
		logger:         l,
		schedule:       backoff.Default(),
		pollInterval:   _defaultPollInterval,
		fetchTimeout:   _defaultFetchTimeout,
		persistTimeout: _defaultPersistTimeout,
		batchSize:      _defaultBatchSize,
		maxRetries:     _defaultMaxRetries,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.metrics == nil {
		r.metrics = NewMetrics(nil)
	}
	r.tracer = otel.Tracer(tracerName)

	return r
}

func (r *OutboxRelay) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return fmt.Errorf("OutboxRelay - Start - worker already started")
	}

	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(r.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				r.ProcessOnce(r.ctx)
			}
		}
	}()

	r.logger.Info("OutboxRelay - Start - polling every %s, batch size %d, max retries %d",
		r.pollInterval, r.batchSize, r.maxRetries)

	return nil
}

// ProcessOnce runs one relay tick and returns how many messages were submitted
// or resolved. A call made while another tick is running returns 0 at once.
func (r *OutboxRelay) ProcessOnce(ctx context.Context) int {
	if !r.ticking.CompareAndSwap(false, true) {
		r.metrics.skippedTicks.Inc()
		r.logger.Debug("OutboxRelay - ProcessOnce - previous tick still running, skipping")

		return 0
	}
	defer r.ticking.Store(false)

	now := r.now()

	// снимок до чтения: завершение, пришедшее во время FetchDue, не даст отправить устаревшую копию
	busy := r.inflightSnapshot()

	// 1. забираем due-сообщения; занятые и уже известные без маршрута строки не съедают батч
	limit := r.batchSize + min(len(busy)+int(r.unroutableCount.Load()), r.batchSize)

	fetchCtx, fetchCancel := context.WithTimeout(ctx, r.fetchTimeout)
	msgs, err := r.outbox.FetchDue(fetchCtx, now, limit)
	fetchCancel()
	if err != nil {
		r.logger.Error(err, "OutboxRelay - ProcessOnce - r.outbox.FetchDue")

		return 0
	}
	if len(msgs) == 0 {
		r.metrics.oldestDueLag.Set(0)
		r.logger.Debug("OutboxRelay - ProcessOnce - no due outbox messages")

		return 0
	}

	ctx, span := r.tracer.Start(ctx, "outbox.relay.tick")
	defer span.End()
	span.SetAttributes(attribute.Int("outbox.fetched", len(msgs)))

	r.metrics.ticks.Inc()
	r.metrics.fetched.Add(float64(len(msgs)))
	r.metrics.oldestDueLag.Set(now.Sub(msgs[0].OccurredOn).Seconds())

	// 2. каждое сообщение обрабатываем независимо
	processed, submitted := 0, 0
	for _, msg := range msgs {
		if _, ok := busy[msg.ID]; ok {
			continue
		}
		if _, ok := r.inflight.Load(msg.ID); ok {
			continue
		}

		_, known := r.unroutableSeen.Load(msg.ID)
		if !known {
			if submitted == r.batchSize {
				continue
			}
			submitted++
		}

		r.processMessage(ctx, msg)
		processed++
	}

	return processed
}

func (r *OutboxRelay) inflightSnapshot() map[uuid.UUID]struct{} {
	busy := make(map[uuid.UUID]struct{})
	r.inflight.Range(func(key, _ any) bool {
		busy[key.(uuid.UUID)] = struct{}{}
		return true
	})

	return busy
}

func (r *OutboxRelay) processMessage(ctx context.Context, msg *entity.OutboxMessage) {
	var complete func(error)

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			r.logger.Error(err, "OutboxRelay - processMessage - message %s", msg.ID)

			// после сабмита исход фиксирует тот, кто придет первым: колбэк или мы
			if complete != nil {
				complete(err)
				return
			}
			r.handleFailure(msg, "", err)
		}
	}()

	// 3. куда отправлять
	topic, ok := r.router.Resolve(msg.EventType)
	if !ok {
		r.handleUnroutable(msg)

		return
	}

	// 4. асинхронная отправка, результат - в колбэке
	sendCtx, span := r.tracer.Start(ctx, "outbox.relay.send",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.destination.name", topic),
			attribute.String("outbox.message_id", msg.ID.String()),
			attribute.String("outbox.event_type", msg.EventType),
		),
	)

	var once sync.Once
	complete = func(sendErr error) {
		once.Do(func() {
			defer r.inflight.Delete(msg.ID)
			defer span.End()

			defer func() {
				if rec := recover(); rec != nil {
					r.logger.Error(fmt.Errorf("panic: %v", rec), "OutboxRelay - complete - message %s", msg.ID)
				}
			}()

			if sendErr != nil {
				span.RecordError(sendErr)
				span.SetStatus(codes.Error, "delivery failed")
				r.handleFailure(msg, topic, sendErr)

				return
			}

			r.handleSuccess(msg, topic)
		})
	}

	r.inflight.Store(msg.ID, struct{}{})
	r.es.SendAsync(sendCtx, topic, msg.AggregateID.String(), msg.Payload, complete)
}

func (r *OutboxRelay) handleUnroutable(msg *entity.OutboxMessage) {
	if err := msg.MarkUnroutable(r.now()); err != nil {
		r.logger.Error(err, "OutboxRelay - handleUnroutable - msg.MarkUnroutable")

		return
	}

	r.persist(msg, "handleUnroutable")

	// о каждом сообщении сообщаем один раз, дальше только debug
	if _, seen := r.unroutableSeen.LoadOrStore(msg.ID, struct{}{}); seen {
		r.logger.Debug("OutboxRelay - handleUnroutable - message %s still has no destination for %q", msg.ID, msg.EventType)

		return
	}

	r.unroutableCount.Add(1)
	r.metrics.unroutable.WithLabelValues(msg.EventType).Inc()
	r.logger.Error(
		"outbox message %s has unknown event type %q: no destination configured (aggregate_type=%s aggregate_id=%s)",
		msg.ID, msg.EventType, msg.AggregateType, msg.AggregateID,
	)
}

func (r *OutboxRelay) handleSuccess(msg *entity.OutboxMessage, topic string) {
	// 5. доставлено
	if err := msg.MarkSent(r.now()); err != nil {
		r.logger.Error(err, "OutboxRelay - handleSuccess - msg.MarkSent")

		return
	}

	r.metrics.sent.WithLabelValues(msg.EventType).Inc()
	r.persist(msg, "handleSuccess")

	r.logger.Debug("outbox message %s sent: event_type=%s aggregate_id=%s destination=%s",
		msg.ID, msg.EventType, msg.AggregateID, topic)
}

func (r *OutboxRelay) handleFailure(msg *entity.OutboxMessage, topic string, cause error) {
	// 6. ретрай с backoff или dead letter
	dead, err := msg.RecordFailure(r.now(), r.maxRetries, r.schedule.Delay)
	if err != nil {
		r.logger.Error(err, "OutboxRelay - handleFailure - msg.RecordFailure")

		return
	}

	r.persist(msg, "handleFailure")

	if dead {
		r.metrics.deadLettered.WithLabelValues(msg.EventType).Inc()
		r.logger.Error(
			"outbox message %s dead-lettered after %d attempts: aggregate_type=%s aggregate_id=%s event_type=%s error=%v",
			msg.ID, msg.RetryAttempts, msg.AggregateType, msg.AggregateID, msg.EventType, cause,
		)

		return
	}

	r.metrics.failed.WithLabelValues(msg.EventType).Inc()
	r.logger.Warn(
		"outbox message %s delivery failed (attempt %d/%d, destination=%q), next attempt at %s: %v",
		msg.ID, msg.RetryAttempts, r.maxRetries, topic, msg.NextAttemptAt.Format(time.RFC3339), cause,
	)
}

// persist не наследует ctx тика: колбэк может прийти после его отмены.
func (r *OutboxRelay) persist(msg *entity.OutboxMessage, where string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.persistTimeout)
	defer cancel()

	err := r.outbox.Save(ctx, msg)
	if errors.Is(err, errs.ErrOutboxMessageTerminal) {
		r.logger.Warn("OutboxRelay - %s - message %s is already terminal, status %s not written", where, msg.ID, msg.Status)

		return
	}
	if err != nil {
		r.metrics.persistErrors.Inc()
		r.logger.Error(err, "OutboxRelay - %s - r.outbox.Save - message %s", where, msg.ID)
	}
}

func (r *OutboxRelay) Shutdown(ctx context.Context) error {
	if !r.started.Load() {
		return nil
	}

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan error, 1)

	go func() {
		// 1. ждем текущий тик, 2. закрываем producer - он дожидается незавершенных отправок
		r.wg.Wait()
		done <- r.es.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("OutboxRelay - Shutdown - r.es.Close: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("OutboxRelay - Shutdown: %w", ctx.Err())
	}
}
