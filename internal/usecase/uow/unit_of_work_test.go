package uow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalZero = decimal.Zero

type txMarker struct{}

type fakeTransactor struct {
	mu        sync.Mutex
	begun     int
	committed int
	rolled    int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	f.begun++
	id := f.begun
	f.mu.Unlock()

	err := fn(context.WithValue(ctx, txMarker{}, id))

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.rolled++
		return err
	}
	f.committed++

	return nil
}

type writeCall struct {
	tx     int
	events []entity.DomainEvent
	ctxErr error
}

type fakeWriter struct {
	err   error
	calls []writeCall
}

func (f *fakeWriter) Write(ctx context.Context, events []entity.DomainEvent) error {
	tx, _ := ctx.Value(txMarker{}).(int)
	f.calls = append(f.calls, writeCall{tx: tx, events: events, ctxErr: ctx.Err()})

	return f.err
}

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Debug(interface{}, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{})       {}
func (l *recordingLogger) Warn(string, ...interface{})       {}
func (l *recordingLogger) Fatal(interface{}, ...interface{}) {}
func (l *recordingLogger) Error(message interface{}, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprint(message))
}

func newTestUnit(mode FlushMode) (*UnitOfWork, *fakeTransactor, *fakeWriter, *recordingLogger) {
	tr := &fakeTransactor{}
	w := &fakeWriter{}
	l := &recordingLogger{}

	return New(tr, w, mode, time.Second, l), tr, w, l
}

func raiseTwo(t *testing.T) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		d, err := entity.NewDepartment("Research", "RND", time.Now())
		require.NoError(t, err)
		p, err := entity.NewPosition("Engineer", decimalZero, decimalZero, time.Now())
		require.NoError(t, err)

		if err := Raise(ctx, d.PullEvents()...); err != nil {
			return err
		}
		return Raise(ctx, p.PullEvents()...)
	}
}

func TestDoFlushesAfterCommitInSeparateTransaction(t *testing.T) {
	t.Parallel()

	u, tr, w, _ := newTestUnit(FlushAfterCommit)

	require.NoError(t, u.Do(context.Background(), raiseTwo(t)))

	require.Len(t, w.calls, 1)
	assert.Equal(t, 2, w.calls[0].tx, "outbox write must run in the second transaction")
	require.Len(t, w.calls[0].events, 2)
	assert.Equal(t, entity.EventDepartmentCreated, w.calls[0].events[0].EventType())
	assert.Equal(t, entity.EventPositionCreated, w.calls[0].events[1].EventType())
	assert.Equal(t, 2, tr.committed)
}

func TestDoRollbackDiscardsEvents(t *testing.T) {
	t.Parallel()

	u, tr, w, _ := newTestUnit(FlushAfterCommit)
	boom := errors.New("constraint violated")

	var acc *Accumulator
	err := u.Do(context.Background(), func(ctx context.Context) error {
		require.NoError(t, raiseTwo(t)(ctx))
		acc, _ = FromContext(ctx)
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Empty(t, w.calls)
	assert.Equal(t, 1, tr.rolled)
	require.NotNil(t, acc)
	assert.Zero(t, acc.Len())
}

func TestDoWithoutEventsSkipsFlush(t *testing.T) {
	t.Parallel()

	u, tr, w, l := newTestUnit(FlushAfterCommit)

	require.NoError(t, u.Do(context.Background(), func(context.Context) error { return nil }))

	assert.Empty(t, w.calls)
	assert.Equal(t, 1, tr.begun)
	assert.Empty(t, l.errors)
}

func TestDoFlushFailureIsLoggedNotReturned(t *testing.T) {
	t.Parallel()

	u, _, w, l := newTestUnit(FlushAfterCommit)
	w.err = errors.New("outbox table missing")

	require.NoError(t, u.Do(context.Background(), raiseTwo(t)))

	require.Len(t, w.calls, 1)
	require.Len(t, l.errors, 1)
	assert.Contains(t, l.errors[0], "outbox table missing")
}

func TestDoFlushSurvivesCanceledRequest(t *testing.T) {
	t.Parallel()

	u, _, w, _ := newTestUnit(FlushAfterCommit)
	ctx, cancel := context.WithCancel(context.Background())

	err := u.Do(ctx, func(ctx context.Context) error {
		require.NoError(t, raiseTwo(t)(ctx))
		cancel()
		return nil
	})
	require.NoError(t, err)

	require.Len(t, w.calls, 1)
	assert.NoError(t, w.calls[0].ctxErr)
}

func TestDoClearsAccumulatorOnPanic(t *testing.T) {
	t.Parallel()

	u, _, w, _ := newTestUnit(FlushAfterCommit)

	var acc *Accumulator
	assert.Panics(t, func() {
		_ = u.Do(context.Background(), func(ctx context.Context) error {
			require.NoError(t, raiseTwo(t)(ctx))
			acc, _ = FromContext(ctx)
			panic("handler bug")
		})
	})

	require.NotNil(t, acc)
	assert.Zero(t, acc.Len())
	assert.Empty(t, w.calls)
}

func TestDoInTransactionMode(t *testing.T) {
	t.Parallel()

	t.Run("writes inside the business transaction", func(t *testing.T) {
		t.Parallel()
		u, tr, w, _ := newTestUnit(FlushInTransaction)

		require.NoError(t, u.Do(context.Background(), raiseTwo(t)))

		require.Len(t, w.calls, 1)
		assert.Equal(t, 1, w.calls[0].tx)
		assert.Equal(t, 1, tr.begun)
	})

	t.Run("outbox failure rolls back the business change", func(t *testing.T) {
		t.Parallel()
		u, tr, w, _ := newTestUnit(FlushInTransaction)
		w.err = errors.New("disk full")

		err := u.Do(context.Background(), raiseTwo(t))

		require.ErrorIs(t, err, w.err)
		assert.Equal(t, 1, tr.rolled)
		assert.Zero(t, tr.committed)
	})
}

func TestNestedDoJoinsOuterUnit(t *testing.T) {
	t.Parallel()

	u, tr, w, _ := newTestUnit(FlushAfterCommit)

	err := u.Do(context.Background(), func(ctx context.Context) error {
		return u.Do(ctx, raiseTwo(t))
	})
	require.NoError(t, err)

	require.Len(t, w.calls, 1)
	assert.Len(t, w.calls[0].events, 2)
	assert.Equal(t, 2, tr.begun)
}

func TestParseFlushMode(t *testing.T) {
	t.Parallel()

	m, err := ParseFlushMode("in_transaction")
	require.NoError(t, err)
	assert.Equal(t, FlushInTransaction, m)

	_, err = ParseFlushMode("eventually")
	require.Error(t, err)
}
