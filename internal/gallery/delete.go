package gallery

import (
	"context"
	"fmt"
	"slices"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	confirmDeleteOne  = "Are you sure you want to delete this image?"
	confirmDeleteMany = "Delete %d selected image(s)?"
)

// DeleteOne removes the image from the host and then the record from the
// store. A failed remote delete leaves the record untouched.
func (e *Engine) DeleteOne(ctx context.Context, id uuid.UUID) (*DeleteReport, error) {
	e.mu.Lock()
	rec, ok := e.record(id)
	if !ok {
		e.mu.Unlock()

		return nil, fmt.Errorf("Engine - DeleteOne: %w", errs.ErrRecordNotFound)
	}
	if _, busy := e.deleting[id]; busy {
		e.mu.Unlock()

		return nil, fmt.Errorf("Engine - DeleteOne: %w", errs.ErrDeleteInProgress)
	}
	e.mu.Unlock()

	report := &DeleteReport{Requested: uuid.UUIDs{id}}

	// 1. подтверждение
	if !e.prompt.Confirm(confirmDeleteOne) {
		report.Canceled = true

		return report, nil
	}

	// 2. помечаем запись; повторный клик по ней же отклоняется
	e.mu.Lock()
	if _, busy := e.deleting[id]; busy {
		e.mu.Unlock()

		return nil, fmt.Errorf("Engine - DeleteOne: %w", errs.ErrDeleteInProgress)
	}
	e.deleting[id] = struct{}{}
	e.mu.Unlock()
	e.notify()

	defer func() {
		e.mu.Lock()
		delete(e.deleting, id)
		e.mu.Unlock()
		e.notify()
	}()

	// 3. сначала удаляем с хостинга
	err := e.host.DestroyImage(ctx, rec.PublicID)
	if err != nil {
		report.Remote.Failed = []Failure{{ID: id, Err: err}}
		e.prompt.Alert("Failed to delete image: " + err.Error())

		return report, fmt.Errorf("Engine - DeleteOne - e.host.DestroyImage: %w", err)
	}
	report.Remote.Succeeded = uuid.UUIDs{id}

	// 4. затем запись
	err = e.store.DeleteRecord(ctx, id)
	if err != nil {
		report.Store.Failed = []Failure{{ID: id, Err: err}}
		e.prompt.Alert("Failed to delete image: " + err.Error())

		return report, fmt.Errorf("Engine - DeleteOne - e.store.DeleteRecord: %w", err)
	}
	report.Store.Succeeded = uuid.UUIDs{id}

	// 5. закрываем модалку если она была на этой записи
	e.mu.Lock()
	if e.modal != nil && e.modal.record.ID == id {
		e.modal = nil
	}
	e.mu.Unlock()

	return report, nil
}

// DeleteSelected runs DeleteMany over the current selection.
func (e *Engine) DeleteSelected(ctx context.Context) (*DeleteReport, error) {
	return e.DeleteMany(ctx, e.Selection())
}

// DeleteMany is all or nothing at the remote step: every host delete runs
// concurrently and must succeed before the records are removed as one batch.
// The selection is cleared whatever the outcome.
func (e *Engine) DeleteMany(ctx context.Context, ids uuid.UUIDs) (*DeleteReport, error) {
	report := &DeleteReport{}
	if len(ids) == 0 {
		return report, nil
	}

	e.mu.Lock()
	if e.bulk {
		e.mu.Unlock()

		return nil, fmt.Errorf("Engine - DeleteMany: %w", errs.ErrDeleteInProgress)
	}

	// выбранные id ищем в базовом списке, не только в видимом
	records := make([]entity.ImageRecord, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if rec, ok := e.record(id); ok {
			records = append(records, rec)
		}
	}
	e.mu.Unlock()

	if len(records) == 0 {
		e.DeselectAll()

		return report, nil
	}

	for _, rec := range records {
		report.Requested = append(report.Requested, rec.ID)
	}

	// 1. подтверждение с количеством
	if !e.prompt.Confirm(fmt.Sprintf(confirmDeleteMany, len(records))) {
		report.Canceled = true

		return report, nil
	}

	e.mu.Lock()
	e.bulk = true
	e.mu.Unlock()
	e.notify()

	defer func() {
		e.mu.Lock()
		e.bulk = false
		clear(e.selected)
		if e.modal != nil && slices.Contains(report.Store.Succeeded, e.modal.record.ID) {
			e.modal = nil
		}
		e.mu.Unlock()
		e.notify()
	}()

	// 2. все удаления с хостинга параллельно, ждем каждое
	remoteErrs := make([]error, len(records))

	var g errgroup.Group
	for i, rec := range records {
		g.Go(func() error {
			remoteErrs[i] = e.host.DestroyImage(ctx, rec.PublicID)

			return nil
		})
	}
	_ = g.Wait()

	for i, rec := range records {
		if remoteErrs[i] != nil {
			report.Remote.Failed = append(report.Remote.Failed, Failure{ID: rec.ID, Err: remoteErrs[i]})
		} else {
			report.Remote.Succeeded = append(report.Remote.Succeeded, rec.ID)
		}
	}

	// 3. хоть одна ошибка - в базу не пишем
	if len(report.Remote.Failed) > 0 {
		e.prompt.Alert("Bulk delete error: " + report.Message())

		return report, fmt.Errorf("Engine - DeleteMany - e.host.DestroyImage: %w", report.Remote.Err())
	}

	// 4. одна атомарная пачка
	err := e.store.DeleteRecords(ctx, report.Requested)
	if err != nil {
		for _, id := range report.Requested {
			report.Store.Failed = append(report.Store.Failed, Failure{ID: id, Err: err})
		}
		e.prompt.Alert("Bulk delete error: " + report.Message())

		return report, fmt.Errorf("Engine - DeleteMany - e.store.DeleteRecords: %w", err)
	}
	report.Store.Succeeded = slices.Clone(report.Requested)

	return report, nil
}

// Deleting reports whether a single delete of id is in flight.
func (e *Engine) Deleting(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.deleting[id]

	return ok
}

func (e *Engine) BulkDeleting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.bulk
}
