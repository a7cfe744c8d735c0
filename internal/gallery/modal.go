package gallery

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/google/uuid"
)

// modalState is a snapshot taken at open time. The index is not recomputed
// when the view changes; the modal only closes when its record disappears.
type modalState struct {
	record entity.ImageRecord
	index  int
}

func (e *Engine) OpenModal(id uuid.UUID) error {
	e.mu.Lock()

	idx := -1
	view := e.view()
	for i, r := range view {
		if r.ID == id {
			idx = i

			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()

		return fmt.Errorf("Engine - OpenModal: %w", errs.ErrRecordNotFound)
	}

	e.modal = &modalState{record: view[idx], index: idx}
	e.mu.Unlock()

	e.notify()

	return nil
}

// Modal returns the open record and its index.
func (e *Engine) Modal() (entity.ImageRecord, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.modal == nil {
		return entity.ImageRecord{}, 0, false
	}

	return e.modal.record, e.modal.index, true
}

func (e *Engine) Next() { e.navigate(1) }

func (e *Engine) Prev() { e.navigate(-1) }

// navigate clamps to the current derived view; stepping past either end is
// a no-op.
func (e *Engine) navigate(step int) {
	e.mu.Lock()
	if e.modal == nil {
		e.mu.Unlock()

		return
	}

	view := e.view()
	idx := e.modal.index + step
	if idx < 0 || idx >= len(view) {
		e.mu.Unlock()

		return
	}

	e.modal = &modalState{record: view[idx], index: idx}
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) CloseModal() {
	e.mu.Lock()
	open := e.modal != nil
	e.modal = nil
	e.mu.Unlock()

	if open {
		e.notify()
	}
}

// DeleteCurrent deletes the record shown in the modal.
func (e *Engine) DeleteCurrent(ctx context.Context) (*DeleteReport, error) {
	rec, _, ok := e.Modal()
	if !ok {
		return nil, fmt.Errorf("Engine - DeleteCurrent: %w", errs.ErrRecordNotFound)
	}

	return e.DeleteOne(ctx, rec.ID)
}
