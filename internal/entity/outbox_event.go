package entity

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a ChangeEvent persisted in the same transaction as the
// record mutation it describes, waiting to be relayed to the broker.
type OutboxEvent struct {
	ID          uuid.UUID  `json:"id"`
	AggregateID uuid.UUID  `json:"aggregate_id"` // image record id
	EventType   ChangeType `json:"event_type"`
	Payload     []byte     `json:"payload"`
	Status      Status     `json:"status"` // pending, processing, processed, failed
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	RetryCount  int        `json:"retry_count"`
}
