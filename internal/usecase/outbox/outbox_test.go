package outbox

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/andreyxaxa/hr-outbox/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutboxRepo struct {
	created   []*entity.OutboxMessage
	saved     []*entity.OutboxMessage
	createErr error

	dueStatuses []entity.OutboxStatus
	dueNow      time.Time
	dueLimit    int
}

func (f *fakeOutboxRepo) Create(_ context.Context, msg *entity.OutboxMessage) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, msg)
	return nil
}

func (f *fakeOutboxRepo) Save(_ context.Context, msg *entity.OutboxMessage) error {
	f.saved = append(f.saved, msg)
	return nil
}

func (f *fakeOutboxRepo) FindDue(_ context.Context, statuses []entity.OutboxStatus, now time.Time, limit int) ([]*entity.OutboxMessage, error) {
	f.dueStatuses, f.dueNow, f.dueLimit = statuses, now, limit
	return f.created, nil
}

func (f *fakeOutboxRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.OutboxMessage, error) {
	for _, m := range f.created {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, errs.ErrRecordNotFound
}

type infoLogger struct {
	infos []string
}

func (l *infoLogger) Debug(interface{}, ...interface{}) {}
func (l *infoLogger) Warn(string, ...interface{})       {}
func (l *infoLogger) Error(interface{}, ...interface{}) {}
func (l *infoLogger) Fatal(interface{}, ...interface{}) {}
func (l *infoLogger) Info(message string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(message, args...))
}

var writeNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase() (*OutboxUseCase, *fakeOutboxRepo, *infoLogger) {
	r := &fakeOutboxRepo{}
	l := &infoLogger{}
	uc := New(r, l)
	uc.now = func() time.Time { return writeNow }

	return uc, r, l
}

func hrEvents(t *testing.T) []entity.DomainEvent {
	t.Helper()

	e, err := entity.NewEmployee("Grace", "Hopper", "grace@example.com", nil, nil, writeNow)
	require.NoError(t, err)
	require.NoError(t, e.ChangeStatus(entity.EmployeeOnLeave, writeNow))

	return e.PullEvents()
}

func TestWritePersistsPendingMessages(t *testing.T) {
	t.Parallel()

	uc, r, l := newTestUseCase()
	events := hrEvents(t)

	require.NoError(t, uc.Write(context.Background(), events))

	require.Len(t, r.created, 2)
	for i, msg := range r.created {
		assert.Equal(t, entity.OutboxPending, msg.Status)
		assert.Zero(t, msg.RetryAttempts)
		require.NotNil(t, msg.NextAttemptAt)
		assert.Equal(t, writeNow, *msg.NextAttemptAt)
		assert.Equal(t, string(events[i].EventType()), msg.EventType)
		assert.Equal(t, events[i].AggregateID(), msg.AggregateID)
	}

	require.Len(t, l.infos, 2)
	assert.Contains(t, l.infos[0], "event_type=EmployeeCreated")
	assert.Contains(t, l.infos[0], "aggregate_type=Employee")
	assert.Contains(t, l.infos[1], "event_type=EmployeeStatusChanged")
	assert.Contains(t, l.infos[1], r.created[1].ID.String())
}

func TestWriteEmptyIsNoop(t *testing.T) {
	t.Parallel()

	uc, r, l := newTestUseCase()

	require.NoError(t, uc.Write(context.Background(), nil))
	assert.Empty(t, r.created)
	assert.Empty(t, l.infos)
}

func TestWriteStopsOnRepoError(t *testing.T) {
	t.Parallel()

	uc, r, l := newTestUseCase()
	r.createErr = errors.New("connection reset")

	err := uc.Write(context.Background(), hrEvents(t))
	require.ErrorIs(t, err, r.createErr)
	assert.Empty(t, l.infos)
}

func TestFetchDueAsksForPendingAndFailed(t *testing.T) {
	t.Parallel()

	uc, r, _ := newTestUseCase()
	require.NoError(t, uc.Write(context.Background(), hrEvents(t)))

	msgs, err := uc.FetchDue(context.Background(), writeNow, 50)
	require.NoError(t, err)

	assert.Len(t, msgs, 2)
	assert.Equal(t, []entity.OutboxStatus{entity.OutboxPending, entity.OutboxFailed}, r.dueStatuses)
	assert.Equal(t, writeNow, r.dueNow)
	assert.Equal(t, 50, r.dueLimit)
}

func TestGetMessageNotFound(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUseCase()

	_, err := uc.GetMessage(context.Background(), uuid.New())
	require.ErrorIs(t, err, errs.ErrRecordNotFound)
}
