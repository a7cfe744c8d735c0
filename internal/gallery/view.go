package gallery

import (
	"fmt"
	"slices"
	"strings"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"golang.org/x/text/cases"
)

func (e *Engine) SetSearch(term string) {
	e.mu.Lock()
	e.search = term
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) Search() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.search
}

func (e *Engine) SetSort(key entity.SortKey) {
	e.mu.Lock()
	e.sortKey = key
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) SortKey() entity.SortKey {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sortKey
}

func (e *Engine) SetViewMode(mode entity.ViewMode) {
	e.mu.Lock()
	e.viewMode = mode
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) ViewMode() entity.ViewMode {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.viewMode
}

// View is the filtered then sorted projection of the base list.
func (e *Engine) View() []entity.ImageRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.view()
}

// Summary reads like "3 photos • 1 selected".
func (e *Engine) Summary() string {
	e.mu.Lock()
	n, selected := len(e.view()), len(e.selected)
	e.mu.Unlock()

	noun := "photos"
	if n == 1 {
		noun = "photo"
	}

	s := fmt.Sprintf("%d %s", n, noun)
	if selected > 0 {
		s += fmt.Sprintf(" • %d selected", selected)
	}

	return s
}

// view must be called with e.mu held.
func (e *Engine) view() []entity.ImageRecord {
	out := filterRecords(e.base, e.search)
	e.sortRecords(out)

	return out
}

// filterRecords keeps records whose title or description contains term,
// ignoring case. The result never aliases records.
func filterRecords(records []entity.ImageRecord, term string) []entity.ImageRecord {
	if term == "" {
		return slices.Clone(records)
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]entity.ImageRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(fold.String(r.Title), needle) || strings.Contains(fold.String(r.Description), needle) {
			out = append(out, r)
		}
	}

	return out
}

// sortRecords is stable: equal keys keep the order the store delivered.
// Must be called with e.mu held, the collator is not safe for concurrent use.
func (e *Engine) sortRecords(records []entity.ImageRecord) {
	var cmp func(a, b entity.ImageRecord) int

	switch e.sortKey {
	case entity.SortOldest:
		cmp = func(a, b entity.ImageRecord) int { return a.UploadedAt.Compare(b.UploadedAt) }
	case entity.SortName:
		cmp = func(a, b entity.ImageRecord) int { return e.collator.CompareString(a.Title, b.Title) }
	case entity.SortSize:
		cmp = func(a, b entity.ImageRecord) int {
			switch {
			case a.Size > b.Size:
				return -1
			case a.Size < b.Size:
				return 1
			default:
				return 0
			}
		}
	default:
		cmp = func(a, b entity.ImageRecord) int { return b.UploadedAt.Compare(a.UploadedAt) }
	}

	slices.SortStableFunc(records, cmp)
}
