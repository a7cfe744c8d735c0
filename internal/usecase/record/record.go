package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/internal/repo"
	"github.com/andreyxaxa/Photo-Gallery/pkg/logger"
	"github.com/google/uuid"
)

type RecordUseCase struct {
	records    repo.ImageRecordRepo
	outbox     repo.OutboxRepo
	transactor repo.Transactor
	now        func() time.Time

	logger logger.Interface
}

func New(
	records repo.ImageRecordRepo,
	outbox repo.OutboxRepo,
	transactor repo.Transactor,
	l logger.Interface,
) *RecordUseCase {
	return &RecordUseCase{
		records:    records,
		outbox:     outbox,
		transactor: transactor,
		now:        time.Now,
		logger:     l,
	}
}

// Create stores an upload result verbatim. The identifier is assigned here,
// exactly once.
func (uc *RecordUseCase) Create(ctx context.Context, upload dto.UploadResult) (*entity.ImageRecord, error) {
	rec := &entity.ImageRecord{
		ID:          uuid.New(),
		URL:         upload.URL,
		PublicID:    upload.PublicID,
		Title:       upload.Title,
		Description: upload.Description,
		UploadedAt:  upload.UploadedAt,
		Size:        upload.Size,
		Width:       upload.Width,
		Height:      upload.Height,
	}
	if strings.TrimSpace(rec.Title) == "" {
		rec.Title = entity.DefaultTitle
	}
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = uc.now().UTC()
	}

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.records.Create(ctx, rec); err != nil {
			return fmt.Errorf("RecordUseCase - Create - uc.records.Create: %w", err)
		}

		return uc.enqueueChanges(ctx, entity.RecordCreated, rec.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("RecordUseCase - Create - uc.transactor.WithinTransaction: %w", err)
	}

	return rec, nil
}

func (uc *RecordUseCase) List(ctx context.Context) ([]entity.ImageRecord, error) {
	records, err := uc.records.ListByUploadedAtDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("RecordUseCase - List - uc.records.ListByUploadedAtDesc: %w", err)
	}

	return records, nil
}

func (uc *RecordUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.records.Delete(ctx, id); err != nil {
			return fmt.Errorf("RecordUseCase - Delete - uc.records.Delete: %w", err)
		}

		return uc.enqueueChanges(ctx, entity.RecordDeleted, id)
	})
	if err != nil {
		return fmt.Errorf("RecordUseCase - Delete - uc.transactor.WithinTransaction: %w", err)
	}

	return nil
}

// DeleteBatch removes all documents in one transaction: either every listed
// document is gone afterwards or none is.
func (uc *RecordUseCase) DeleteBatch(ctx context.Context, ids uuid.UUIDs) error {
	if len(ids) == 0 {
		return nil
	}

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		deleted, err := uc.records.DeleteBatch(ctx, ids)
		if err != nil {
			return fmt.Errorf("RecordUseCase - DeleteBatch - uc.records.DeleteBatch: %w", err)
		}

		if deleted != int64(len(ids)) {
			uc.logger.Warn("RecordUseCase - DeleteBatch - %d of %d documents were already gone", int64(len(ids))-deleted, len(ids))
		}

		return uc.enqueueChanges(ctx, entity.RecordDeleted, ids...)
	})
	if err != nil {
		return fmt.Errorf("RecordUseCase - DeleteBatch - uc.transactor.WithinTransaction: %w", err)
	}

	return nil
}

func (uc *RecordUseCase) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	events, err := uc.outbox.GetPendingEvents(ctx, limit, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("RecordUseCase - GetPendingEvents - uc.outbox.GetPendingEvents: %w", err)
	}

	return events, nil
}

func (uc *RecordUseCase) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outbox.MarkAsProcessingBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("RecordUseCase - MarkAsProcessingBatch - uc.outbox.MarkAsProcessingBatch: %w", err)
	}

	return nil
}

func (uc *RecordUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outbox.MarkAsProcessedBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("RecordUseCase - MarkAsProcessedBatch - uc.outbox.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

func (uc *RecordUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outbox.IncrementRetryCountBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("RecordUseCase - IncrementRetryCountBatch - uc.outbox.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *RecordUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	err := uc.outbox.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return fmt.Errorf("RecordUseCase - MarkMaxRetriesAsFailed - uc.outbox.MarkMaxRetriesAsFailed: %w", err)
	}

	return nil
}

func (uc *RecordUseCase) CleanupOutbox(ctx context.Context) error {
	count, err := uc.outbox.DeleteProcessedAndFailed(ctx)
	if err != nil {
		return fmt.Errorf("RecordUseCase - CleanupOutbox - uc.outbox.DeleteProcessedAndFailed: %w", err)
	}

	if count > 0 {
		uc.logger.Info("deleted old change events, count = %d", count)
	}

	return nil
}

func eventIDs(events []*entity.OutboxEvent) uuid.UUIDs {
	IDs := make(uuid.UUIDs, 0, len(events))
	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	return IDs
}
