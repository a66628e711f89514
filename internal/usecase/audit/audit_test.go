package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/andreyxaxa/hr-outbox/internal/repo/persistent"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineLogger struct {
	infos  []string
	debugs []string
}

func (l *lineLogger) Debug(m interface{}, _ ...interface{}) { l.debugs = append(l.debugs, m.(string)) }
func (l *lineLogger) Info(m string, _ ...interface{})       { l.infos = append(l.infos, m) }
func (l *lineLogger) Warn(string, ...interface{})           {}
func (l *lineLogger) Error(interface{}, ...interface{})     {}
func (l *lineLogger) Fatal(interface{}, ...interface{})     {}

type failingProcessed struct{ err error }

func (f failingProcessed) MarkProcessed(context.Context, uuid.UUID) (bool, error) {
	return false, f.err
}

func TestHandleLogsEachEventOnce(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := &lineLogger{}
	uc := New(persistent.NewProcessedEventRepo(client, "audit", time.Hour), l)

	ev := dto.EventEnvelope{
		EventID:       uuid.New(),
		EventType:     "EmployeeStatusChanged",
		AggregateID:   uuid.New(),
		AggregateType: "Employee",
		OccurredOn:    time.Now(),
	}

	require.NoError(t, uc.Handle(context.Background(), ev))
	require.NoError(t, uc.Handle(context.Background(), ev))

	assert.Len(t, l.infos, 1)
	assert.Len(t, l.debugs, 1)
}

func TestHandleReturnsStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("redis: connection pool timeout")
	uc := New(failingProcessed{err: cause}, &lineLogger{})

	err := uc.Handle(context.Background(), dto.EventEnvelope{EventID: uuid.New()})

	require.ErrorIs(t, err, cause)
}
