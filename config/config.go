package config

import (
	"fmt"
	"time"

	"github.com/andreyxaxa/hr-outbox/pkg/backoff"
	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		App         App
		HTTP        HTTP
		Log         Log
		PG          PG
		Kafka       Kafka
		Outbox      Outbox
		OutboxRelay OutboxRelay
		Routing     Routing
		Consumers   Consumers
		Redis       Redis
		S3          S3
		Tracing     Tracing
		Metrics     Metrics
		Swagger     Swagger
	}

	App struct {
		Name    string `env:"APP_NAME" envDefault:"hr-outbox"`
		Version string `env:"APP_VERSION" envDefault:"1.0.0"`
	}

	HTTP struct {
		Port            string        `env:"HTTP_PORT,required"`
		UsePreforkMode  bool          `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"5s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"3s"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
	}

	Kafka struct {
		Brokers      []string      `env:"KAFKA_BROKERS,required"`
		BatchTimeout time.Duration `env:"KAFKA_PRODUCER_BATCH_TIMEOUT" envDefault:"10ms"`
		WriteTimeout time.Duration `env:"KAFKA_PRODUCER_WRITE_TIMEOUT" envDefault:"10s"`
	}

	Outbox struct {
		FlushMode    string        `env:"OUTBOX_FLUSH_MODE" envDefault:"after_commit"` // after_commit | in_transaction
		FlushTimeout time.Duration `env:"OUTBOX_FLUSH_TIMEOUT" envDefault:"5s"`
	}

	OutboxRelay struct {
		PollInterval    time.Duration   `env:"OUTBOX_RELAY_POLL_INTERVAL" envDefault:"2s"`
		BatchSize       int             `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
		MaxRetries      int             `env:"OUTBOX_RELAY_MAX_RETRIES" envDefault:"5"`
		Backoff         []time.Duration `env:"OUTBOX_RELAY_BACKOFF" envDefault:"5s,10s,30s,1m,5m" envSeparator:","`
		FetchTimeout    time.Duration   `env:"OUTBOX_RELAY_FETCH_TIMEOUT" envDefault:"10s"`
		PersistTimeout  time.Duration   `env:"OUTBOX_RELAY_PERSIST_TIMEOUT" envDefault:"5s"`
		ShutdownTimeout time.Duration   `env:"OUTBOX_RELAY_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	}

	// Routing - статическая таблица event type -> topic.
	Routing struct {
		Routes map[string]string `env:"OUTBOX_TOPIC_ROUTES" envDefault:"EmployeeCreated:hr.employee.events,EmployeeStatusChanged:hr.employee.events,DepartmentCreated:hr.department.events,PositionCreated:hr.position.events" envSeparator:"," envKeyValSeparator:":"`
	}

	Consumers struct {
		AuditEnabled    bool          `env:"CONSUMER_AUDIT_ENABLED" envDefault:"true"`
		AuditGroupID    string        `env:"CONSUMER_AUDIT_GROUP_ID" envDefault:"hr-audit-log"`
		ArchiveEnabled  bool          `env:"CONSUMER_ARCHIVE_ENABLED" envDefault:"false"`
		ArchiveGroupID  string        `env:"CONSUMER_ARCHIVE_GROUP_ID" envDefault:"hr-event-archive"`
		Workers         int           `env:"CONSUMER_WORKERS" envDefault:"4"`
		CommitTimeout   time.Duration `env:"CONSUMER_COMMIT_TIMEOUT" envDefault:"2s"`
		ProcessTimeout  time.Duration `env:"CONSUMER_PROCESS_TIMEOUT" envDefault:"10s"`
		DedupeTTL       time.Duration `env:"CONSUMER_DEDUPE_TTL" envDefault:"168h"`
		ShutdownTimeout time.Duration `env:"CONSUMER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT"`
		AccessKey      string        `env:"S3_ACCESS_KEY"`
		SecretKey      string        `env:"S3_SECRET_KEY"`
		Bucket         string        `env:"S3_BUCKET" envDefault:"hr-events"`
		Region         string        `env:"S3_REGION" envDefault:"us-east-1"`
		CreateBucket   bool          `env:"S3_CREATE_BUCKET" envDefault:"true"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Tracing struct {
		Enabled     bool    `env:"TRACING_ENABLED" envDefault:"false"`
		Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
		Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
		SampleRatio float64 `env:"TRACING_SAMPLE_RATIO" envDefault:"1"`
	}

	Metrics struct {
		Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.OutboxRelay.PollInterval <= 0 {
		return fmt.Errorf("OUTBOX_RELAY_POLL_INTERVAL must be positive")
	}

	if c.OutboxRelay.BatchSize < 1 {
		return fmt.Errorf("OUTBOX_RELAY_BATCH_SIZE must be at least 1")
	}

	if c.OutboxRelay.MaxRetries < 1 {
		return fmt.Errorf("OUTBOX_RELAY_MAX_RETRIES must be at least 1")
	}

	if !backoff.Schedule(c.OutboxRelay.Backoff).Valid() {
		return fmt.Errorf("OUTBOX_RELAY_BACKOFF must list at least one delay, all positive")
	}

	if c.Outbox.FlushTimeout <= 0 {
		return fmt.Errorf("OUTBOX_FLUSH_TIMEOUT must be positive")
	}

	if c.Consumers.ArchiveEnabled && c.S3.Endpoint == "" {
		return fmt.Errorf("S3_ENDPOINT is required when CONSUMER_ARCHIVE_ENABLED is set")
	}

	return nil
}
