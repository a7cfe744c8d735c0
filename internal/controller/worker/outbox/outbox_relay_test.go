package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOutbox implements the outbox half of usecase.RecordUseCase.
type fakeOutbox struct {
	mu      sync.Mutex
	pending []*entity.OutboxEvent

	processing int
	processed  int
	retried    int
}

func (f *fakeOutbox) Create(context.Context, dto.UploadResult) (*entity.ImageRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeOutbox) List(context.Context) ([]entity.ImageRecord, error) { return nil, nil }

func (f *fakeOutbox) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeOutbox) DeleteBatch(context.Context, uuid.UUIDs) error { return nil }

func (f *fakeOutbox) GetPendingEvents(_ context.Context, _, limit int) ([]*entity.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := min(limit, len(f.pending))

	return append([]*entity.OutboxEvent(nil), f.pending[:n]...), nil
}

func (f *fakeOutbox) MarkAsProcessingBatch(_ context.Context, events []*entity.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.processing += len(events)

	return nil
}

func (f *fakeOutbox) MarkAsProcessedBatch(_ context.Context, events []*entity.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.processed += len(events)
	f.pending = f.pending[len(events):]

	return nil
}

func (f *fakeOutbox) IncrementRetryCountBatch(_ context.Context, events []*entity.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.retried += len(events)

	return nil
}

func (f *fakeOutbox) MarkMaxRetriesAsFailed(context.Context, int) error { return nil }

func (f *fakeOutbox) CleanupOutbox(context.Context) error { return nil }

func (f *fakeOutbox) counts() (processed, retried, left int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.processed, f.retried, len(f.pending)
}

type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent int
}

func (s *fakeSender) SendEvents(_ context.Context, events []*entity.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.sent += len(events)

	return nil
}

func (s *fakeSender) Close() error { return nil }

func pendingEvents(n int) []*entity.OutboxEvent {
	events := make([]*entity.OutboxEvent, 0, n)
	for range n {
		events = append(events, &entity.OutboxEvent{
			ID:          uuid.New(),
			AggregateID: uuid.New(),
			EventType:   entity.RecordCreated,
			Status:      entity.Pending,
		})
	}

	return events
}

func newTestRelay(rec *fakeOutbox, es *fakeSender, batchSize int) *OutboxRelay {
	return New(rec, es, logger.Nop(), 10*time.Millisecond, time.Hour, time.Hour, time.Second, batchSize, 3)
}

func TestProcessEventsBatchSends(t *testing.T) {
	rec := &fakeOutbox{pending: pendingEvents(3)}
	es := &fakeSender{}

	r := newTestRelay(rec, es, 10)

	assert.Equal(t, 3, r.processEventsBatch(context.Background()))

	processed, retried, left := rec.counts()
	assert.Equal(t, 3, processed)
	assert.Zero(t, retried)
	assert.Zero(t, left)
	assert.Equal(t, 3, es.sent)
}

func TestProcessEventsBatchRetriesOnSendFailure(t *testing.T) {
	rec := &fakeOutbox{pending: pendingEvents(2)}
	es := &fakeSender{err: errors.New("broker down")}

	r := newTestRelay(rec, es, 10)

	assert.Zero(t, r.processEventsBatch(context.Background()))

	processed, retried, left := rec.counts()
	assert.Zero(t, processed)
	assert.Equal(t, 2, retried)
	assert.Equal(t, 2, left)
}

func TestRelayDrainsBacklogInOneTick(t *testing.T) {
	rec := &fakeOutbox{pending: pendingEvents(7)}
	es := &fakeSender{}

	r := newTestRelay(rec, es, 2)
	require.NoError(t, r.Start(context.Background()))

	require.Eventually(t, func() bool {
		_, _, left := rec.counts()

		return left == 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, r.Shutdown(context.Background()))
	assert.Error(t, r.Start(context.Background()))
}
