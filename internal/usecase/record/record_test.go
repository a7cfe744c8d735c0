package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore emulates a transactional store: writes made inside a failed
// transaction are discarded.
type memStore struct {
	records map[uuid.UUID]entity.ImageRecord
	events  []*entity.OutboxEvent

	failOutbox bool
}

func newMemStore() *memStore {
	return &memStore{records: map[uuid.UUID]entity.ImageRecord{}}
}

func (m *memStore) WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	records := make(map[uuid.UUID]entity.ImageRecord, len(m.records))
	for k, v := range m.records {
		records[k] = v
	}
	events := append([]*entity.OutboxEvent(nil), m.events...)

	if err := f(ctx); err != nil {
		m.records, m.events = records, events

		return err
	}

	return nil
}

type recordRepo struct{ *memStore }

func (r recordRepo) Create(_ context.Context, rec *entity.ImageRecord) error {
	r.records[rec.ID] = *rec

	return nil
}

func (r recordRepo) ListByUploadedAtDesc(context.Context) ([]entity.ImageRecord, error) {
	out := make([]entity.ImageRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}

	return out, nil
}

func (r recordRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return errs.ErrRecordNotFound
	}
	delete(r.records, id)

	return nil
}

func (r recordRepo) DeleteBatch(_ context.Context, ids uuid.UUIDs) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.records[id]; ok {
			delete(r.records, id)
			n++
		}
	}

	return n, nil
}

type outboxRepo struct{ *memStore }

func (o outboxRepo) Create(_ context.Context, e *entity.OutboxEvent) error {
	if o.failOutbox {
		return errors.New("outbox unavailable")
	}
	o.events = append(o.events, e)

	return nil
}

func (o outboxRepo) GetPendingEvents(context.Context, int, int) ([]*entity.OutboxEvent, error) {
	return o.events, nil
}
func (o outboxRepo) MarkAsProcessingBatch(context.Context, uuid.UUIDs) error    { return nil }
func (o outboxRepo) MarkAsProcessedBatch(context.Context, uuid.UUIDs) error     { return nil }
func (o outboxRepo) MarkMaxRetriesAsFailed(context.Context, int) error          { return nil }
func (o outboxRepo) IncrementRetryCountBatch(context.Context, uuid.UUIDs) error { return nil }
func (o outboxRepo) DeleteProcessedAndFailed(context.Context) (int64, error)    { return 0, nil }

func newUseCase(m *memStore) *RecordUseCase {
	return New(recordRepo{m}, outboxRepo{m}, m, logger.Nop())
}

func TestCreateStoresUploadVerbatimAndAssignsID(t *testing.T) {
	m := newMemStore()
	uc := newUseCase(m)

	uploadedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec, err := uc.Create(context.Background(), dto.UploadResult{
		URL:        "http://cdn/gallery/a.jpg",
		PublicID:   "gallery/a.jpg",
		Title:      "Sunset",
		UploadedAt: uploadedAt,
		Size:       2048,
		Width:      800,
		Height:     600,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, "Sunset", rec.Title)
	assert.Equal(t, uploadedAt, rec.UploadedAt)
	assert.Contains(t, m.records, rec.ID)

	require.Len(t, m.events, 1)
	assert.Equal(t, entity.RecordCreated, m.events[0].EventType)
	assert.Equal(t, rec.ID, m.events[0].AggregateID)
	assert.Equal(t, entity.Pending, m.events[0].Status)
}

func TestCreateDefaultsTitle(t *testing.T) {
	uc := newUseCase(newMemStore())

	rec, err := uc.Create(context.Background(), dto.UploadResult{URL: "u", PublicID: "p"})
	require.NoError(t, err)

	assert.Equal(t, entity.DefaultTitle, rec.Title)
	assert.False(t, rec.UploadedAt.IsZero())
}

func TestCreateRollsBackWhenOutboxFails(t *testing.T) {
	m := newMemStore()
	m.failOutbox = true
	uc := newUseCase(m)

	_, err := uc.Create(context.Background(), dto.UploadResult{URL: "u", PublicID: "p"})
	require.Error(t, err)

	assert.Empty(t, m.records)
}

func TestDeleteUnknownRecord(t *testing.T) {
	uc := newUseCase(newMemStore())

	err := uc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestDeleteBatchIsAtomic(t *testing.T) {
	m := newMemStore()
	uc := newUseCase(m)

	a, err := uc.Create(context.Background(), dto.UploadResult{URL: "a", PublicID: "a"})
	require.NoError(t, err)
	b, err := uc.Create(context.Background(), dto.UploadResult{URL: "b", PublicID: "b"})
	require.NoError(t, err)

	m.failOutbox = true
	err = uc.DeleteBatch(context.Background(), uuid.UUIDs{a.ID, b.ID})
	require.Error(t, err)
	assert.Len(t, m.records, 2)

	m.failOutbox = false
	err = uc.DeleteBatch(context.Background(), uuid.UUIDs{a.ID, b.ID})
	require.NoError(t, err)
	assert.Empty(t, m.records)

	var deletes int
	for _, e := range m.events {
		if e.EventType == entity.RecordDeleted {
			deletes++
		}
	}
	assert.Equal(t, 2, deletes)
}

func TestDeleteBatchEmptyIsNoop(t *testing.T) {
	m := newMemStore()
	uc := newUseCase(m)

	require.NoError(t, uc.DeleteBatch(context.Background(), nil))
	assert.Empty(t, m.events)
}
