package gallery

import (
	"context"
	"sync"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/google/uuid"
)

type fakeHost struct {
	mu        sync.Mutex
	fail      map[string]error
	destroyed []string
}

func (h *fakeHost) DestroyImage(_ context.Context, publicID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.fail[publicID]; err != nil {
		return err
	}
	h.destroyed = append(h.destroyed, publicID)

	return nil
}

func (h *fakeHost) calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.destroyed...)
}

type fakeStore struct {
	mu      sync.Mutex
	err     error
	deleted uuid.UUIDs
	batches []uuid.UUIDs
}

func (s *fakeStore) DeleteRecord(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)

	return nil
}

func (s *fakeStore) DeleteRecords(_ context.Context, ids uuid.UUIDs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, ids)
	s.deleted = append(s.deleted, ids...)

	return nil
}

type fakePrompter struct {
	decline  bool
	confirms []string
	alerts   []string
}

func (p *fakePrompter) Confirm(message string) bool {
	p.confirms = append(p.confirms, message)

	return !p.decline
}

func (p *fakePrompter) Alert(message string) {
	p.alerts = append(p.alerts, message)
}

type fakeSource struct {
	sub *fakeSubscription
	err error
}

func (s *fakeSource) Subscribe(context.Context) (Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.sub, nil
}

type fakeSubscription struct {
	snapshots chan []entity.ImageRecord
	errs      chan error
	closed    chan struct{}
	once      sync.Once
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{
		snapshots: make(chan []entity.ImageRecord),
		errs:      make(chan error, 1),
		closed:    make(chan struct{}),
	}
}

func (s *fakeSubscription) Next(ctx context.Context) ([]entity.ImageRecord, error) {
	select {
	case records := <-s.snapshots:
		return records, nil
	case err := <-s.errs:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *fakeSubscription) Close() error {
	s.once.Do(func() { close(s.closed) })

	return nil
}

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func record(title, description string, age time.Duration, size int64) entity.ImageRecord {
	id := uuid.New()

	return entity.ImageRecord{
		ID:          id,
		URL:         "https://img.example.com/gallery/" + id.String() + ".jpg",
		PublicID:    "gallery/" + id.String() + ".jpg",
		Title:       title,
		Description: description,
		UploadedAt:  base.Add(-age),
		Size:        size,
		Width:       800,
		Height:      600,
	}
}

func newTestEngine(records ...entity.ImageRecord) (*Engine, *fakeHost, *fakeStore, *fakePrompter) {
	host := &fakeHost{fail: map[string]error{}}
	store := &fakeStore{}
	prompt := &fakePrompter{}

	e := New(&fakeSource{sub: newFakeSubscription()}, store, host, prompt)
	e.applySnapshot(records)

	return e, host, store, prompt
}

func ids(records []entity.ImageRecord) uuid.UUIDs {
	out := make(uuid.UUIDs, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}

	return out
}
