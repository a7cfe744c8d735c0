package gallery

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewFiltersByTitleOrDescription(t *testing.T) {
	sunset := record("Sunset", "", time.Hour, 10)
	beach := record("Holiday", "sunset over the BEACH", 2*time.Hour, 20)
	city := record("City", "night lights", 3*time.Hour, 30)

	e, _, _, _ := newTestEngine(sunset, beach, city)

	e.SetSearch("SUNSET")
	assert.Equal(t, ids([]entity.ImageRecord{sunset, beach}), ids(e.View()))

	e.SetSearch("beach")
	assert.Equal(t, ids([]entity.ImageRecord{beach}), ids(e.View()))

	e.SetSearch("nothing matches")
	assert.Empty(t, e.View())

	e.SetSearch("")
	assert.Len(t, e.View(), 3)
}

func TestViewSortKeys(t *testing.T) {
	a := record("banana", "", 2*time.Hour, 300)
	b := record("Apple", "", 1*time.Hour, 100)
	c := record("cherry", "", 3*time.Hour, 200)

	e, _, _, _ := newTestEngine(a, b, c)

	tests := []struct {
		key  entity.SortKey
		want []entity.ImageRecord
	}{
		{entity.SortNewest, []entity.ImageRecord{b, a, c}},
		{entity.SortOldest, []entity.ImageRecord{c, a, b}},
		{entity.SortName, []entity.ImageRecord{b, a, c}},
		{entity.SortSize, []entity.ImageRecord{a, c, b}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			e.SetSort(tt.key)
			assert.Equal(t, ids(tt.want), ids(e.View()))
		})
	}
}

func TestViewSortIsStableForEqualKeys(t *testing.T) {
	first := record("same", "", time.Hour, 50)
	second := record("same", "", 2*time.Hour, 50)
	third := record("same", "", 3*time.Hour, 50)

	e, _, _, _ := newTestEngine(first, second, third)

	e.SetSort(entity.SortSize)
	assert.Equal(t, ids([]entity.ImageRecord{first, second, third}), ids(e.View()))

	e.SetSort(entity.SortName)
	assert.Equal(t, ids([]entity.ImageRecord{first, second, third}), ids(e.View()))
}

func TestViewNameSortIsLocaleAware(t *testing.T) {
	zebra := record("zebra", "", time.Hour, 1)
	eclair := record("Éclair", "", 2*time.Hour, 1)
	apple := record("apple", "", 3*time.Hour, 1)

	e, _, _, _ := newTestEngine(zebra, eclair, apple)
	e.SetSort(entity.SortName)

	assert.Equal(t, ids([]entity.ImageRecord{apple, eclair, zebra}), ids(e.View()))
}

func TestViewDoesNotAliasBase(t *testing.T) {
	e, _, _, _ := newTestEngine(record("a", "", time.Hour, 1), record("b", "", 2*time.Hour, 2))

	view := e.View()
	view[0].Title = "changed"

	require.Len(t, e.Records(), 2)
	assert.NotEqual(t, "changed", e.Records()[0].Title)
}

func TestSummary(t *testing.T) {
	one := record("one", "", time.Hour, 1)
	e, _, _, _ := newTestEngine(one)

	assert.Equal(t, "1 photo", e.Summary())

	e.applySnapshot([]entity.ImageRecord{one, record("two", "", 2*time.Hour, 1)})
	e.Toggle(one.ID)
	assert.Equal(t, "2 photos • 1 selected", e.Summary())
}

func TestPlaceholderForBrokenImages(t *testing.T) {
	rec := record(`Tom & "Jerry"`, "", time.Hour, 1)
	e, _, _, _ := newTestEngine(rec)

	assert.Equal(t, rec.URL, e.ImageSource(rec))

	e.MarkBroken(rec.ID)

	src := e.ImageSource(rec)
	require.True(t, strings.HasPrefix(src, "data:image/svg+xml,"))
	assert.NotContains(t, src, "#")
	assert.NotContains(t, src, " ")

	svg, err := url.PathUnescape(strings.TrimPrefix(src, "data:image/svg+xml,"))
	require.NoError(t, err)
	assert.Contains(t, svg, "Image failed to load")
	assert.Contains(t, svg, "Tom &amp; &#34;Jerry&#34;")
}

func TestPlaceholderDefaultsTitle(t *testing.T) {
	assert.Contains(t, Placeholder(""), entity.DefaultTitle)
}
