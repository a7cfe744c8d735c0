package gallery

import (
	"testing"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSelectionStates(t *testing.T) {
	a := record("a", "", time.Hour, 1)
	b := record("b", "", 2*time.Hour, 1)
	e, _, _, _ := newTestEngine(a, b)

	assert.Equal(t, SelectionNone, e.SelectionState())

	e.Toggle(a.ID)
	assert.Equal(t, SelectionPartial, e.SelectionState())
	assert.True(t, e.IsSelected(a.ID))

	e.Toggle(b.ID)
	assert.Equal(t, SelectionAll, e.SelectionState())

	e.Toggle(a.ID)
	assert.False(t, e.IsSelected(a.ID))
	assert.Equal(t, uuid.UUIDs{b.ID}, e.Selection())
}

func TestSelectAllUsesDerivedView(t *testing.T) {
	cat := record("cat", "", time.Hour, 1)
	dog := record("dog", "", 2*time.Hour, 1)
	e, _, _, _ := newTestEngine(cat, dog)

	e.SetSearch("cat")
	e.SelectAll()

	assert.Equal(t, uuid.UUIDs{cat.ID}, e.Selection())
	assert.Equal(t, SelectionAll, e.SelectionState())

	e.DeselectAll()
	assert.Empty(t, e.Selection())
	assert.Equal(t, SelectionNone, e.SelectionState())
}

func TestSelectAllOnEmptyViewIsEmpty(t *testing.T) {
	e, _, _, _ := newTestEngine(record("a", "", time.Hour, 1))

	e.SetSearch("zzz")
	e.SelectAll()

	assert.Empty(t, e.Selection())
	assert.Equal(t, SelectionNone, e.SelectionState())
}

func TestSnapshotResetsSelection(t *testing.T) {
	a := record("a", "", time.Hour, 1)
	e, _, _, _ := newTestEngine(a)

	e.Toggle(a.ID)
	e.applySnapshot([]entity.ImageRecord{a, record("new", "", 0, 1)})

	assert.Empty(t, e.Selection())
}

func TestSelectionOutsideViewIsPartial(t *testing.T) {
	cat := record("cat", "", time.Hour, 1)
	dog := record("dog", "", 2*time.Hour, 1)
	e, _, _, _ := newTestEngine(cat, dog)

	e.Toggle(dog.ID)
	e.SetSearch("cat")

	assert.Equal(t, SelectionPartial, e.SelectionState())
	assert.Equal(t, uuid.UUIDs{dog.ID}, e.Selection())
}
