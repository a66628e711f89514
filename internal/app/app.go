package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/hr-outbox/config"
	kafkactrl "github.com/andreyxaxa/hr-outbox/internal/controller/kafka"
	"github.com/andreyxaxa/hr-outbox/internal/controller/restapi"
	"github.com/andreyxaxa/hr-outbox/internal/controller/worker/outbox"
	infrakafka "github.com/andreyxaxa/hr-outbox/internal/infrastructure/kafka"
	"github.com/andreyxaxa/hr-outbox/internal/infrastructure/routing"
	"github.com/andreyxaxa/hr-outbox/internal/repo/persistent"
	"github.com/andreyxaxa/hr-outbox/internal/usecase"
	"github.com/andreyxaxa/hr-outbox/internal/usecase/archive"
	"github.com/andreyxaxa/hr-outbox/internal/usecase/audit"
	"github.com/andreyxaxa/hr-outbox/internal/usecase/department"
	"github.com/andreyxaxa/hr-outbox/internal/usecase/employee"
	outboxuc "github.com/andreyxaxa/hr-outbox/internal/usecase/outbox"
	"github.com/andreyxaxa/hr-outbox/internal/usecase/position"
	"github.com/andreyxaxa/hr-outbox/internal/usecase/uow"
	"github.com/andreyxaxa/hr-outbox/pkg/backoff"
	"github.com/andreyxaxa/hr-outbox/pkg/httpserver"
	"github.com/andreyxaxa/hr-outbox/pkg/kafka/consumer"
	"github.com/andreyxaxa/hr-outbox/pkg/kafka/producer"
	"github.com/andreyxaxa/hr-outbox/pkg/logger"
	"github.com/andreyxaxa/hr-outbox/pkg/postgres"
	"github.com/andreyxaxa/hr-outbox/pkg/redisclient"
	"github.com/andreyxaxa/hr-outbox/pkg/s3client"
	"github.com/andreyxaxa/hr-outbox/pkg/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Tracing
	shutdownTracing, err := tracing.New(ctx, cfg.App.Name, cfg.Tracing.Endpoint,
		cfg.Tracing.Insecure, cfg.Tracing.Enabled, cfg.Tracing.SampleRatio)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - tracing.New: %w", err))
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			l.Error(fmt.Errorf("app - Run - shutdownTracing: %w", err))
		}
	}()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Repository

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	// Use-Case

	// outbox use-case
	outboxUseCase := outboxuc.New(persistent.NewOutboxRepo(pg), l)

	// unit of work
	flushMode, err := uow.ParseFlushMode(cfg.Outbox.FlushMode)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - uow.ParseFlushMode: %w", err))
	}
	unitOfWork := uow.New(pg, outboxUseCase, flushMode, cfg.Outbox.FlushTimeout, l)

	// hr use-cases
	employeeUseCase := employee.New(persistent.NewEmployeeRepo(pg), unitOfWork)
	departmentUseCase := department.New(persistent.NewDepartmentRepo(pg), unitOfWork)
	positionUseCase := position.New(persistent.NewPositionRepo(pg), unitOfWork)

	// Routing
	router := routing.New(cfg.Routing.Routes)
	checkRoutes(router, l)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers,
		producer.BatchTimeout(cfg.Kafka.BatchTimeout),
		producer.WriteTimeout(cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		outboxUseCase,
		infrakafka.NewEventProducer(kafkaProducer),
		router,
		l,
		outbox.PollInterval(cfg.OutboxRelay.PollInterval),
		outbox.BatchSize(cfg.OutboxRelay.BatchSize),
		outbox.MaxRetries(cfg.OutboxRelay.MaxRetries),
		outbox.Backoff(backoff.Schedule(cfg.OutboxRelay.Backoff)),
		outbox.FetchTimeout(cfg.OutboxRelay.FetchTimeout),
		outbox.PersistTimeout(cfg.OutboxRelay.PersistTimeout),
		outbox.WithMetrics(outbox.NewMetrics(registry)),
	)

	// Kafka as Controller (consumers of the relayed events)
	var consumers []*kafkactrl.KafkaController

	if cfg.Consumers.AuditEnabled {
		rdb, err := redisclient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - redisclient.New: %w", err))
		}
		defer rdb.Close()

		auditUseCase := audit.New(
			persistent.NewProcessedEventRepo(rdb.Client, cfg.Consumers.AuditGroupID, cfg.Consumers.DedupeTTL),
			l,
		)

		consumers = append(consumers, newConsumer(ctx, cfg, cfg.Consumers.AuditGroupID, router.Topics(), auditUseCase, l))
	}

	if cfg.Consumers.ArchiveEnabled {
		s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
		defer s3Cancel()
		s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket,
			s3client.Region(cfg.S3.Region),
			s3client.CreateBucketIfMissing(cfg.S3.CreateBucket),
		)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
		}

		archiveUseCase := archive.New(persistent.NewEventArchiveRepo(s3c))

		consumers = append(consumers, newConsumer(ctx, cfg, cfg.Consumers.ArchiveGroupID, router.Topics(), archiveUseCase, l))
	}

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)
	restapi.NewRouter(httpServer.App, cfg, employeeUseCase, departmentUseCase, positionUseCase, outboxUseCase, registry, l)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	for _, c := range consumers {
		err = c.Start(ctx)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - kafkaController.Start: %w", err))
		}
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}

	for _, c := range consumers {
		kcShutdownCtx, kcShutdownCancel := context.WithTimeout(ctx, cfg.Consumers.ShutdownTimeout)
		err = c.Shutdown(kcShutdownCtx)
		kcShutdownCancel()
		if err != nil {
			l.Error(fmt.Errorf("app - Run - kafkaController.Shutdown: %w", err))
		}
	}
}

func newConsumer(
	ctx context.Context,
	cfg *config.Config,
	groupID string,
	topics []string,
	h usecase.EventHandler,
	l logger.Interface,
) *kafkactrl.KafkaController {
	kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, groupID, topics)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - consumer.New(%s): %w", groupID, err))
	}

	return kafkactrl.New(
		h,
		infrakafka.NewEventConsumer(kafkaConsumer, groupID),
		l,
		cfg.Consumers.CommitTimeout,
		cfg.Consumers.ProcessTimeout,
		cfg.Consumers.Workers,
	)
}
