package gallery

import (
	"context"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/google/uuid"
)

type (
	// RecordSource opens the standing subscription over the record store,
	// ordered by upload time, newest first.
	RecordSource interface {
		Subscribe(ctx context.Context) (Subscription, error)
	}

	// Subscription yields full snapshots. Next blocks until the next one
	// arrives; any error ends the subscription.
	Subscription interface {
		Next(ctx context.Context) ([]entity.ImageRecord, error)
		Close() error
	}

	RecordStore interface {
		DeleteRecord(ctx context.Context, id uuid.UUID) error
		// DeleteRecords removes all ids as one atomic batch.
		DeleteRecords(ctx context.Context, ids uuid.UUIDs) error
	}

	ImageHost interface {
		DestroyImage(ctx context.Context, publicID string) error
	}

	// Prompter guards destructive actions and surfaces failures to the user.
	Prompter interface {
		Confirm(message string) bool
		Alert(message string)
	}
)
