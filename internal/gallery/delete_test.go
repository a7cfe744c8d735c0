package gallery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteOneRemoteFailureKeepsRecord(t *testing.T) {
	rec := record("keep me", "", time.Hour, 1)
	e, host, store, prompt := newTestEngine(rec)
	host.fail[rec.PublicID] = errors.New("host unreachable")

	report, err := e.DeleteOne(context.Background(), rec.ID)
	require.Error(t, err)

	assert.Empty(t, store.deleted)
	assert.Len(t, report.Remote.Failed, 1)
	assert.Empty(t, report.Store.Succeeded)
	assert.False(t, report.Complete())
	assert.Equal(t, []string{"Failed to delete image: host unreachable"}, prompt.alerts)

	assert.False(t, e.Deleting(rec.ID))
	assert.Equal(t, uuid.UUIDs{rec.ID}, ids(e.View()))
}

func TestDeleteOneRemovesRemoteThenStore(t *testing.T) {
	rec := record("bye", "", time.Hour, 1)
	e, host, store, prompt := newTestEngine(rec)

	report, err := e.DeleteOne(context.Background(), rec.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Are you sure you want to delete this image?"}, prompt.confirms)
	assert.Equal(t, []string{rec.PublicID}, host.calls())
	assert.Equal(t, uuid.UUIDs{rec.ID}, store.deleted)
	assert.Equal(t, uuid.UUIDs{rec.ID}, report.Deleted())
	assert.Empty(t, prompt.alerts)

	// запись пропадает со следующим снимком
	e.applySnapshot(nil)
	assert.Empty(t, e.View())
}

func TestDeleteOneStoreFailureIsReported(t *testing.T) {
	rec := record("orphan", "", time.Hour, 1)
	e, host, store, prompt := newTestEngine(rec)
	store.err = errors.New("store down")

	report, err := e.DeleteOne(context.Background(), rec.ID)
	require.Error(t, err)

	assert.Equal(t, []string{rec.PublicID}, host.calls())
	assert.Equal(t, uuid.UUIDs{rec.ID}, report.Remote.Succeeded)
	phase, failed := report.FailedPhase()
	require.True(t, failed)
	assert.Equal(t, PhaseStore, phase)
	assert.Len(t, prompt.alerts, 1)
}

func TestDeleteOneDeclined(t *testing.T) {
	rec := record("stay", "", time.Hour, 1)
	e, host, store, prompt := newTestEngine(rec)
	prompt.decline = true

	report, err := e.DeleteOne(context.Background(), rec.ID)
	require.NoError(t, err)

	assert.True(t, report.Canceled)
	assert.Empty(t, host.calls())
	assert.Empty(t, store.deleted)
	assert.Empty(t, report.Message())
}

func TestDeleteOneUnknownRecord(t *testing.T) {
	e, _, _, _ := newTestEngine()

	_, err := e.DeleteOne(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

type blockingHost struct {
	started chan struct{}
	release chan struct{}
}

func (h *blockingHost) DestroyImage(ctx context.Context, _ string) error {
	h.started <- struct{}{}
	<-h.release

	return nil
}

func TestDeleteOneRejectsDuplicateTrigger(t *testing.T) {
	rec := record("busy", "", time.Hour, 1)
	host := &blockingHost{started: make(chan struct{}), release: make(chan struct{})}
	e := New(&fakeSource{}, &fakeStore{}, host, &fakePrompter{})
	e.applySnapshot([]entity.ImageRecord{rec})

	done := make(chan error, 1)
	go func() {
		_, err := e.DeleteOne(context.Background(), rec.ID)
		done <- err
	}()

	<-host.started
	assert.True(t, e.Deleting(rec.ID))

	_, err := e.DeleteOne(context.Background(), rec.ID)
	assert.ErrorIs(t, err, errs.ErrDeleteInProgress)

	close(host.release)
	require.NoError(t, <-done)
	assert.False(t, e.Deleting(rec.ID))
}

func TestDeleteOneClosesModalOnThatRecord(t *testing.T) {
	a := record("a", "", time.Hour, 1)
	b := record("b", "", 2*time.Hour, 1)
	e, _, _, _ := newTestEngine(a, b)

	require.NoError(t, e.OpenModal(a.ID))
	_, err := e.DeleteOne(context.Background(), b.ID)
	require.NoError(t, err)

	_, _, ok := e.Modal()
	assert.True(t, ok)

	_, err = e.DeleteOne(context.Background(), a.ID)
	require.NoError(t, err)

	_, _, ok = e.Modal()
	assert.False(t, ok)
}

func TestDeleteManyAllOrNothing(t *testing.T) {
	a := record("a", "", time.Hour, 1)
	b := record("b", "", 2*time.Hour, 1)
	c := record("c", "", 3*time.Hour, 1)
	e, host, store, prompt := newTestEngine(a, b, c)
	host.fail[b.PublicID] = errors.New("rejected")

	e.SelectAll()
	report, err := e.DeleteSelected(context.Background())
	require.Error(t, err)

	// A и C удалены с хостинга, но в базе не тронуто ничего
	assert.ElementsMatch(t, []string{a.PublicID, c.PublicID}, host.calls())
	assert.Empty(t, store.deleted)
	assert.Empty(t, store.batches)

	require.Len(t, report.Remote.Failed, 1)
	assert.Equal(t, b.ID, report.Remote.Failed[0].ID)
	assert.ElementsMatch(t, uuid.UUIDs{a.ID, c.ID}, report.Remote.Succeeded)
	assert.Empty(t, report.Store.Succeeded)

	assert.Equal(t, []string{"Delete 3 selected image(s)?"}, prompt.confirms)
	require.Len(t, prompt.alerts, 1)
	assert.Contains(t, prompt.alerts[0], "Bulk delete error")

	assert.Empty(t, e.Selection())
	assert.False(t, e.BulkDeleting())
	assert.Len(t, e.View(), 3)
}

func TestDeleteManyAtomicBatch(t *testing.T) {
	a := record("a", "", time.Hour, 1)
	b := record("b", "", 2*time.Hour, 1)
	c := record("c", "", 3*time.Hour, 1)
	e, host, store, _ := newTestEngine(a, b, c)

	e.Toggle(a.ID)
	e.Toggle(c.ID)

	report, err := e.DeleteSelected(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{a.PublicID, c.PublicID}, host.calls())
	require.Len(t, store.batches, 1)
	assert.Equal(t, uuid.UUIDs{a.ID, c.ID}, store.batches[0])
	assert.True(t, report.Complete())
	assert.Equal(t, "Deleted 2 image(s)", report.Message())
	assert.Empty(t, e.Selection())
}

func TestDeleteManyResolvesAgainstBaseList(t *testing.T) {
	cat := record("cat", "", time.Hour, 1)
	dog := record("dog", "", 2*time.Hour, 1)
	e, _, store, _ := newTestEngine(cat, dog)

	e.Toggle(dog.ID)
	e.SetSearch("cat")

	_, err := e.DeleteSelected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uuid.UUIDs{dog.ID}, store.deleted)
}

func TestDeleteManyStoreFailureClearsSelection(t *testing.T) {
	a := record("a", "", time.Hour, 1)
	e, _, store, prompt := newTestEngine(a)
	store.err = errors.New("batch aborted")

	e.SelectAll()
	report, err := e.DeleteSelected(context.Background())
	require.Error(t, err)

	assert.Equal(t, uuid.UUIDs{a.ID}, report.Remote.Succeeded)
	assert.Len(t, report.Store.Failed, 1)
	assert.Len(t, prompt.alerts, 1)
	assert.Empty(t, e.Selection())
}

func TestDeleteManyEmptySelectionIsNoop(t *testing.T) {
	e, host, _, prompt := newTestEngine(record("a", "", time.Hour, 1))

	report, err := e.DeleteSelected(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Requested)
	assert.Empty(t, prompt.confirms)
	assert.Empty(t, host.calls())
}

func TestDeleteManyDeclinedKeepsSelection(t *testing.T) {
	a := record("a", "", time.Hour, 1)
	e, host, _, prompt := newTestEngine(a)
	prompt.decline = true

	e.Toggle(a.ID)
	report, err := e.DeleteSelected(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Canceled)
	assert.Empty(t, host.calls())
	assert.Equal(t, uuid.UUIDs{a.ID}, e.Selection())
}
