package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/usecase"
	"github.com/andreyxaxa/hr-outbox/pkg/kafka/headers"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/andreyxaxa/hr-outbox/internal/controller/kafka"

// EventReader is the consumer-group side of the broker.
type EventReader interface {
	Group() string
	ReadEvent(ctx context.Context) (kafka.Message, error)
	CommitEvent(ctx context.Context, event kafka.Message) error
	Close() error
}

type KafkaController struct {
	handler usecase.EventHandler
	ec      EventReader
	logger  logger.Interface

	commitTimeout  time.Duration
	processTimeout time.Duration

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started atomic.Bool
}

func New(
	h usecase.EventHandler,
	ec EventReader,
	l logger.Interface,
	commitTimeout time.Duration,
	processTimeout time.Duration,
	workers int,
) *KafkaController {
	if workers < 1 {
		workers = 1
	}

	return &KafkaController{
		handler:        h,
		ec:             ec,
		logger:         l,
		commitTimeout:  commitTimeout,
		processTimeout: processTimeout,
		workers:        workers,
	}
}

func (c *KafkaController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("KafkaController(%s) - Start - controller already started", c.ec.Group())
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	// канал для задач
	tasks := make(chan kafka.Message, c.workers*2)

	// запускаем воркеры
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(tasks)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(tasks)

		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				// 1. читаем из кафки
				event, err := c.ec.ReadEvent(c.ctx)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						c.logger.Error(err, "KafkaController(%s) - Start - c.ec.ReadEvent", c.ec.Group())
					}
					continue
				}

				// 2. отправляем в канал для воркеров
				select {
				case tasks <- event:
				case <-c.ctx.Done():
					return
				}
			}
		}
	}()

	c.logger.Info("KafkaController(%s) - Start - %d workers", c.ec.Group(), c.workers)

	return nil
}

func (c *KafkaController) process(ctx context.Context, event kafka.Message) error {
	envelope, err := decodeEnvelope(event.Value)
	if err != nil {
		// битое сообщение не лечится повторным чтением: логируем и коммитим
		c.logger.Error(err, "KafkaController(%s) - process - topic %s partition %d offset %d",
			c.ec.Group(), event.Topic, event.Partition, event.Offset)

		return nil
	}

	// продолжаем trace relay, если он пришел в заголовках
	ctx, span := otel.Tracer(tracerName).Start(headers.Extract(ctx, event.Headers), "consumer.handle",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.consumer.group.name", c.ec.Group()),
			attribute.String("messaging.destination.name", event.Topic),
			attribute.String("hr.event_type", envelope.EventType),
			attribute.String("hr.event_id", envelope.EventID.String()),
		),
	)
	defer span.End()

	err = c.handler.Handle(ctx, envelope)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handle failed")

		return fmt.Errorf("KafkaController - process - c.handler.Handle(%s %s): %w", envelope.EventType, envelope.EventID, err)
	}

	return nil
}

func (c *KafkaController) worker(tasks <-chan kafka.Message) {
	defer c.wg.Done()

	// читаем канал, пока не закроется
	for event := range tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error(fmt.Errorf("panic %v", r), "KafkaController(%s) - worker - panic", c.ec.Group())
				}
			}()

			// выполняем обработку
			processCtx, processCancel := context.WithTimeout(c.ctx, c.processTimeout)
			err := c.process(processCtx, event)
			processCancel()
			// коммит смещения на партиции покрывает и все предыдущие: упавшее сообщение
			// перечитается только если до рестарта на партиции не будет успешного коммита
			if err != nil {
				c.logger.Error(err, "KafkaController(%s) - worker - c.process - %s[%d]@%d not committed",
					c.ec.Group(), event.Topic, event.Partition, event.Offset)

				return
			}

			// коммитим после успешной обработки
			commitCtx, commitCancel := context.WithTimeout(context.WithoutCancel(c.ctx), c.commitTimeout)
			err = c.ec.CommitEvent(commitCtx, event)
			commitCancel()
			if err != nil {
				c.logger.Error(err, "KafkaController(%s) - worker - c.ec.CommitEvent", c.ec.Group())
			}
		}()
	}
}

func (c *KafkaController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan error, 1)

	go func() {
		c.wg.Wait()
		done <- c.ec.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("KafkaController(%s) - Shutdown - c.ec.Close: %w", c.ec.Group(), err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("KafkaController(%s) - Shutdown: %w", c.ec.Group(), ctx.Err())
	}
}
