package record

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/google/uuid"
)

// enqueueChanges must run inside the transaction of the mutation it describes.
func (uc *RecordUseCase) enqueueChanges(ctx context.Context, changeType entity.ChangeType, recordIDs ...uuid.UUID) error {
	for _, id := range recordIDs {
		event, err := uc.createOutboxEvent(changeType, id)
		if err != nil {
			return fmt.Errorf("RecordUseCase - enqueueChanges - uc.createOutboxEvent: %w", err)
		}

		if err := uc.outbox.Create(ctx, event); err != nil {
			return fmt.Errorf("RecordUseCase - enqueueChanges - uc.outbox.Create: %w", err)
		}
	}

	return nil
}

func (uc *RecordUseCase) createOutboxEvent(changeType entity.ChangeType, recordID uuid.UUID) (*entity.OutboxEvent, error) {
	now := uc.now().UTC()

	b, err := json.Marshal(entity.ChangeEvent{
		Type:       changeType,
		RecordID:   recordID,
		OccurredAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("RecordUseCase - createOutboxEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: recordID,
		EventType:   changeType,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   now,
		RetryCount:  0,
	}, nil
}
