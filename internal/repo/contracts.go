package repo

import (
	"context"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/google/uuid"
)

type (
	// ObjectRepo is the image host's blob storage.
	ObjectRepo interface {
		Put(ctx context.Context, key string, data []byte, contentType string) error
		Delete(ctx context.Context, key string) error
		PublicURL(key string) string
	}

	ImageRecordRepo interface {
		Create(ctx context.Context, record *entity.ImageRecord) error
		ListByUploadedAtDesc(ctx context.Context) ([]entity.ImageRecord, error)
		Delete(ctx context.Context, id uuid.UUID) error
		DeleteBatch(ctx context.Context, ids uuid.UUIDs) (int64, error)
	}

	OutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int, maxRetries int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		DeleteProcessedAndFailed(ctx context.Context) (int64, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
