package gallery

import (
	"slices"

	"github.com/google/uuid"
)

type SelectionState int

const (
	SelectionNone SelectionState = iota
	SelectionPartial
	SelectionAll
)

func (s SelectionState) String() string {
	switch s {
	case SelectionPartial:
		return "partial"
	case SelectionAll:
		return "all"
	default:
		return "none"
	}
}

func (e *Engine) Toggle(id uuid.UUID) {
	e.mu.Lock()
	if _, ok := e.selected[id]; ok {
		delete(e.selected, id)
	} else {
		e.selected[id] = struct{}{}
	}
	e.mu.Unlock()

	e.notify()
}

// SelectAll replaces the selection with every record of the derived view.
func (e *Engine) SelectAll() {
	e.mu.Lock()
	clear(e.selected)
	for _, r := range e.view() {
		e.selected[r.ID] = struct{}{}
	}
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) DeselectAll() {
	e.mu.Lock()
	clear(e.selected)
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) IsSelected(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.selected[id]

	return ok
}

// Selection returns the selected ids in derived view order; ids no longer
// in the view come last.
func (e *Engine) Selection() uuid.UUIDs {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.selection()
}

func (e *Engine) selection() uuid.UUIDs {
	ids := make(uuid.UUIDs, 0, len(e.selected))
	seen := make(map[uuid.UUID]struct{}, len(e.selected))

	for _, r := range e.view() {
		if _, ok := e.selected[r.ID]; ok {
			ids = append(ids, r.ID)
			seen[r.ID] = struct{}{}
		}
	}

	var rest uuid.UUIDs
	for id := range e.selected {
		if _, ok := seen[id]; !ok {
			rest = append(rest, id)
		}
	}
	slices.SortFunc(rest, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })

	return append(ids, rest...)
}

func (e *Engine) SelectionState() SelectionState {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.selected) == 0 {
		return SelectionNone
	}

	view := e.view()
	if len(view) == 0 || len(e.selected) != len(view) {
		return SelectionPartial
	}

	for _, r := range view {
		if _, ok := e.selected[r.ID]; !ok {
			return SelectionPartial
		}
	}

	return SelectionAll
}
