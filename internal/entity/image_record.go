package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultTitle = "Untitled"

// ImageRecord is the persisted metadata of one uploaded image. ID is assigned
// by the record store; PublicID is the image host key and never changes.
type ImageRecord struct {
	ID uuid.UUID `json:"id"`

	URL      string `json:"url"`
	PublicID string `json:"publicId"`

	Title       string `json:"title"`
	Description string `json:"description"`

	UploadedAt time.Time `json:"uploadedAt"`
	Size       int64     `json:"size"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
}
