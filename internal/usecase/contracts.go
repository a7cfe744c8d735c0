package usecase

import (
	"context"

	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/google/uuid"
)

type (
	// ImageHostUseCase backs the upload and delete adapters.
	ImageHostUseCase interface {
		Upload(ctx context.Context, file dto.UploadFile) (*dto.UploadResult, error)
		Destroy(ctx context.Context, publicID string) error
	}

	// RecordUseCase backs the record store API and the outbox relay.
	RecordUseCase interface {
		Create(ctx context.Context, upload dto.UploadResult) (*entity.ImageRecord, error)
		List(ctx context.Context) ([]entity.ImageRecord, error)
		Delete(ctx context.Context, id uuid.UUID) error
		DeleteBatch(ctx context.Context, ids uuid.UUIDs) error

		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}

	// ChangeFeed fans record changes out to live subscribers.
	ChangeFeed interface {
		Publish(event entity.ChangeEvent)
		Subscribe() (<-chan entity.ChangeEvent, func())
	}
)
