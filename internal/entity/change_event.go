package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChangeType string

const (
	RecordCreated ChangeType = "created"
	RecordDeleted ChangeType = "deleted"
)

// ChangeEvent announces a mutation of the images collection. Subscribers
// treat it as a signal to re-read the full snapshot.
type ChangeEvent struct {
	Type       ChangeType `json:"type"`
	RecordID   uuid.UUID  `json:"record_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}
