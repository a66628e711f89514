package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andreyxaxa/hr-outbox/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchive struct {
	objects map[string][]byte
	err     error
}

func (f *fakeArchive) Put(_ context.Context, key string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.objects[key] = data
	return nil
}

func TestKey(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6f1c3f7e-9d1a-4a55-8a7e-3b1f2c0d9e11")
	at := time.Date(2025, 3, 7, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))

	key := Key(dto.EventEnvelope{EventID: id, EventType: "EmployeeCreated", OccurredOn: at})

	assert.Equal(t, "events/EmployeeCreated/2025/03/08/6f1c3f7e-9d1a-4a55-8a7e-3b1f2c0d9e11.json", key)
}

func TestHandleOverwritesOnRedelivery(t *testing.T) {
	t.Parallel()

	store := &fakeArchive{objects: map[string][]byte{}}
	uc := New(store)
	ev := dto.EventEnvelope{
		EventID:    uuid.New(),
		EventType:  "DepartmentCreated",
		OccurredOn: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Raw:        []byte(`{"name":"Finance"}`),
	}

	require.NoError(t, uc.Handle(context.Background(), ev))
	require.NoError(t, uc.Handle(context.Background(), ev))

	assert.Len(t, store.objects, 1)
	assert.Equal(t, ev.Raw, store.objects[Key(ev)])
}

func TestHandleWrapsStorageError(t *testing.T) {
	t.Parallel()

	cause := errors.New("access denied")
	uc := New(&fakeArchive{err: cause})

	err := uc.Handle(context.Background(), dto.EventEnvelope{EventID: uuid.New()})

	require.ErrorIs(t, err, cause)
}
