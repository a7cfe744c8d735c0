package gallery

import (
	"context"
	"testing"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModalNavigationClamps(t *testing.T) {
	first := record("first", "", time.Hour, 1)
	second := record("second", "", 2*time.Hour, 1)
	third := record("third", "", 3*time.Hour, 1)
	e, _, _, _ := newTestEngine(first, second, third)

	require.NoError(t, e.OpenModal(first.ID))

	e.Prev()
	rec, idx, ok := e.Modal()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, first.ID, rec.ID)

	e.Next()
	e.Next()
	rec, idx, _ = e.Modal()
	assert.Equal(t, 2, idx)
	assert.Equal(t, third.ID, rec.ID)

	e.Next()
	_, idx, _ = e.Modal()
	assert.Equal(t, 2, idx)

	e.CloseModal()
	_, _, ok = e.Modal()
	assert.False(t, ok)
}

func TestOpenModalIndexFollowsDerivedView(t *testing.T) {
	big := record("big", "", time.Hour, 900)
	small := record("small", "", 2*time.Hour, 10)
	e, _, _, _ := newTestEngine(small, big)

	e.SetSort(entity.SortSize)
	require.NoError(t, e.OpenModal(small.ID))

	_, idx, _ := e.Modal()
	assert.Equal(t, 1, idx)
}

func TestOpenModalUnknownRecord(t *testing.T) {
	e, _, _, _ := newTestEngine(record("a", "", time.Hour, 1))

	err := e.OpenModal(uuid.New())
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestModalClosesWhenRecordDisappears(t *testing.T) {
	a := record("a", "", time.Hour, 1)
	b := record("b", "", 2*time.Hour, 1)
	e, _, _, _ := newTestEngine(a, b)

	require.NoError(t, e.OpenModal(b.ID))

	// другие изменения модалку не трогают, индекс остается прежним
	e.applySnapshot([]entity.ImageRecord{record("new", "", 0, 1), a, b})
	rec, idx, ok := e.Modal()
	require.True(t, ok)
	assert.Equal(t, b.ID, rec.ID)
	assert.Equal(t, 1, idx)

	e.applySnapshot([]entity.ImageRecord{a})
	_, _, ok = e.Modal()
	assert.False(t, ok)
}

func TestDeleteCurrent(t *testing.T) {
	a := record("a", "", time.Hour, 1)
	e, host, store, _ := newTestEngine(a)

	_, err := e.DeleteCurrent(context.Background())
	require.ErrorIs(t, err, errs.ErrRecordNotFound)

	require.NoError(t, e.OpenModal(a.ID))

	report, err := e.DeleteCurrent(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Complete())
	assert.Equal(t, []string{a.PublicID}, host.calls())
	assert.Equal(t, uuid.UUIDs{a.ID}, store.deleted)

	_, _, ok := e.Modal()
	assert.False(t, ok)
}
